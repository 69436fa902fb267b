package user

// SignupRequest represents the request payload for registering a new user.
// No field is required; OrgName is accepted but not persisted.
type SignupRequest struct {
	Email    string
	Password string
	Name     string
	OrgName  string
}

// SignupResponse represents the response payload after a successful signup.
type SignupResponse struct {
	UserID int64
}
