package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Team{},
		&TeamMember{},
		&Project{},
		&Task{},
		&TaskComment{},
		&TaskAttachment{},
		&AccessToken{},
	}
}
