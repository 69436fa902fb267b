package user

// DefaultName is assigned to users that sign up without a name.
const DefaultName = "User"

// User represents a user entity in the system.
type User struct {
	ID           int64  // ID is generated by the store on insert
	Email        string // Email is stored verbatim and is not required to be unique
	PasswordHash string // PasswordHash is the bcrypt hash of the password, empty when none was given
	Name         string // Name is the display name of the user
}
