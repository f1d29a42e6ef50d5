package domain

// User is a profile owned by the authentication system. Its ID differs between
// the cloud and local stores; Email is the only join key across them.
type User struct {
	ID       string `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	FullName string `json:"full_name" db:"full_name"`
}
