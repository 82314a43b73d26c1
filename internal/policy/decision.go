package policy

import "net/http"

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	Deny
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d == Allow
}

// Status maps a refusal to its HTTP status code.
func (d Decision) Status() int {
	switch d {
	case Allow:
		return http.StatusOK
	case NotFound:
		return http.StatusNotFound
	}
	return http.StatusForbidden
}

// Message is the body text sent with a refusal.
func (d Decision) Message() string {
	switch d {
	case Allow:
		return ""
	case NotFound:
		return "Not Found"
	}
	return "Forbidden"
}
