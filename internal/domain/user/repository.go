package user

import "context"

// UserRepository defines data access for users. Users are provisioned by the
// external auth provider sync; this backend only reads them.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListStaff retrieves all staff members of a studio
	ListStaff(ctx context.Context, studioID string) ([]User, error)
}
