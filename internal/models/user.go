package models

// User represents a marketplace login
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"` // "msme", "lender" or "buyer"
	PasswordHash string `json:"password_hash"`
}
