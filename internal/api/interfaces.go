package api

import (
	"context" // Context for store operations

	"contactbook/internal/domain" // Domain models
)

// Users is the slice of the user store the handlers need. Satisfied by
// *store.UserStore.
type Users interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Verify(ctx context.Context, username, password string) (*domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
}

// Contacts is the contact store as the handlers see it. Every call carries
// the owner explicitly. Satisfied by *store.ContactStore.
type Contacts interface {
	List(ctx context.Context, owner uint, search string) ([]domain.Contact, error)
	Get(ctx context.Context, owner, id uint) (*domain.Contact, error)
	Create(ctx context.Context, owner uint, name, phone, email string) (*domain.Contact, error)
	Update(ctx context.Context, owner, id uint, name string, phone, email *string) (*domain.Contact, error)
	Delete(ctx context.Context, owner, id uint) error
	Count(ctx context.Context, owner uint) (int64, error)
}
