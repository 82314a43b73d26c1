package realtime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ChannelKind is the entity a channel is scoped to.
type ChannelKind string

const (
	UserChannel ChannelKind = "user"
	TeamChannel ChannelKind = "team"
)

var ErrInvalidChannel = errors.New("invalid channel name")

// Channel is a parsed channel name such as "private-team.4".
type Channel struct {
	Kind ChannelKind
	ID   uint
}

// Name returns the canonical name, without the "private-" prefix.
func (c Channel) Name() string {
	return fmt.Sprintf("%s.%d", c.Kind, c.ID)
}

// ParseChannel accepts "user.{id}" and "team.{id}", optionally prefixed with "private-".
func ParseChannel(name string) (Channel, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "private-")
	kind, rawID, ok := strings.Cut(name, ".")
	if !ok {
		return Channel{}, ErrInvalidChannel
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return Channel{}, ErrInvalidChannel
	}
	switch ChannelKind(kind) {
	case UserChannel, TeamChannel:
		return Channel{Kind: ChannelKind(kind), ID: uint(id)}, nil
	}
	return Channel{}, ErrInvalidChannel
}

// ForUser is the channel of a single user.
func ForUser(id uint) string {
	return Channel{Kind: UserChannel, ID: id}.Name()
}

// ForTeam is the channel shared by the members of a team.
func ForTeam(id uint) string {
	return Channel{Kind: TeamChannel, ID: id}.Name()
}
