package domain

// User represents a registered user of the bank in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"` // Unique
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	DateOfBirth  string `json:"dateOfBirth"`
	PasswordHash string `json:"-"`
	AuditFields
}
