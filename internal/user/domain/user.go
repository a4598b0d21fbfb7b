package domain

// ID is assigned by the store on creation.
type ID int64

// User's PasswordHash is the only credential form the system ever holds;
// plaintext exists transiently inside registration and login calls.
type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
}
