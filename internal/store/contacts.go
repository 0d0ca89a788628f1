package store

import (
	"context" // Context for DB operations
	"errors"  // Error inspection
	"strings" // String manipulation

	"contactbook/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ContactStore persists contacts. Every operation takes the owner's user ID
// and filters by it, so a contact is never visible outside its owner.
type ContactStore struct {
	db *gorm.DB
}

// NewContactStore returns a ContactStore backed by db.
func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// List returns the owner's contacts ordered by name. When search is
// non-empty, only contacts whose name, phone or email contains it
// (case-insensitively) are returned.
func (s *ContactStore) List(ctx context.Context, owner uint, search string) ([]domain.Contact, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", owner)
	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		// LOWER(...) LIKE keeps the match case-insensitive regardless of
		// the column collation
		pattern := "%" + term + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}
	var contacts []domain.Contact
	if err := query.Order("name asc").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Get fetches one contact by ID, scoped to the owner.
func (s *ContactStore) Get(ctx context.Context, owner, id uint) (*domain.Contact, error) {
	var contact domain.Contact
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// Create inserts a new contact for the owner. Name is required; phone and
// email may be empty.
func (s *ContactStore) Create(ctx context.Context, owner uint, name, phone, email string) (*domain.Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	contact := domain.Contact{Name: name, Phone: phone, Email: email, UserID: owner}
	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update renames an owned contact and overwrites phone and email where the
// caller supplied them. A nil phone or email keeps the stored value.
func (s *ContactStore) Update(ctx context.Context, owner, id uint, name string, phone, email *string) (*domain.Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	contact, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	contact.Name = name
	if phone != nil {
		contact.Phone = *phone
	}
	if email != nil {
		contact.Email = *email
	}
	if err := s.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes an owned contact. Deleting someone else's contact reports
// ErrNotFound, same as a contact that never existed.
func (s *ContactStore) Delete(ctx context.Context, owner, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&domain.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns how many contacts the owner has.
func (s *ContactStore) Count(ctx context.Context, owner uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Contact{}).Where("user_id = ?", owner).Count(&count).Error
	return count, err
}
