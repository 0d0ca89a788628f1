package db

import (
	"contactbook/internal/domain" // Importing domain models

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL. TranslateError turns driver duplicate-key errors
// into gorm.ErrDuplicatedKey, which the user store relies on.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates or updates the users and contacts tables, including the
// cascade constraint from users to contacts.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Contact{})
}
