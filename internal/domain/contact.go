package domain

// Contact Model
type Contact struct {
	ID     uint   `gorm:"primaryKey" json:"id"`    // Primary key
	Name   string `gorm:"not null" json:"name"`    // Contact name, required
	Phone  string `json:"phone"`                   // Phone number, optional
	Email  string `json:"email"`                   // Email address, optional
	UserID uint   `gorm:"not null;index" json:"-"` // Foreign key to the owning User
}
