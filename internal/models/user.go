package models

// User is an account keyed by phone number. Created implicitly on the first
// authentication attempt with an unseen number; never mutated afterwards.
type User struct {
	ID           int    `json:"id"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"` // don’t expose hash
}
