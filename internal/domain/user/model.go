package user

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin" || p.Role == "service_role"
}
