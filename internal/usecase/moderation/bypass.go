package moderation

// IsBypassed reports whether any of the author's role names is a bypass role.
func IsBypassed(authorRoles, bypassRoles []string) bool {
	if len(authorRoles) == 0 || len(bypassRoles) == 0 {
		return false
	}
	exempt := make(map[string]struct{}, len(bypassRoles))
	for _, r := range bypassRoles {
		exempt[r] = struct{}{}
	}
	for _, r := range authorRoles {
		if _, ok := exempt[r]; ok {
			return true
		}
	}
	return false
}
