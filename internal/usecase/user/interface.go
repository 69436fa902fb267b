package user

import "context"

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	Signup(ctx context.Context, in SignupRequest) (*SignupResponse, error)
	CheckDatabase(ctx context.Context) error
}
