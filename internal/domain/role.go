package domain

type Permission string

const (
	PermAdmin          Permission = "admin"
	PermManageMessages Permission = "manage_messages"
	PermUser           Permission = "user"
)

// Permissions derives the coarse permission list from the message flags.
func (m Message) Permissions() []Permission {
	perms := []Permission{PermUser}
	if m.CanManageMessages {
		perms = append(perms, PermManageMessages)
	}
	if m.IsPlatformAdmin {
		perms = append(perms, PermAdmin)
	}
	return perms
}

// HasPermission reports whether the author holds p.
func (m Message) HasPermission(p Permission) bool {
	for _, held := range m.Permissions() {
		if held == p {
			return true
		}
	}
	return false
}
