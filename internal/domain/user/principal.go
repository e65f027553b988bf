package user

// Principal identifies the caller of an authenticated request.
type Principal struct {
	UserID   string
	Username string
	Admin    bool
}
