package domain

// User Model
type User struct {
	ID       uint      `gorm:"primaryKey"`                  // Primary key
	Username string    `gorm:"unique;not null"`             // Unique username, stored lowercase
	Password string    `gorm:"not null"`                    // Hashed password
	Contacts []Contact `gorm:"constraint:OnDelete:CASCADE"` // Owned contacts, removed with the user
}
