package api

import (
	"context"
	"sort"
	"strings"
	"sync"

	"contactbook/internal/domain"
	"contactbook/internal/store"
)

// fakeUsers is an in-memory Users implementation with the store's contract:
// lowercased unique usernames, uniform verify failures. Passwords are kept
// in clear; hashing is the real store's concern.
type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byName map[string]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: make(map[string]*domain.User)}
}

func (f *fakeUsers) Register(_ context.Context, username, password string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, store.ErrCredentialsRequired
	}
	if _, ok := f.byName[username]; ok {
		return nil, store.ErrConflict
	}
	f.nextID++
	u := &domain.User{ID: f.nextID, Username: username, Password: password}
	f.byName[username] = u
	return u, nil
}

func (f *fakeUsers) Verify(_ context.Context, username, password string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[strings.ToLower(strings.TrimSpace(username))]
	if !ok || u.Password != password {
		return nil, store.ErrInvalidCredentials
	}
	return u, nil
}

func (f *fakeUsers) Get(_ context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

// fakeContacts is an in-memory Contacts implementation mirroring the real
// store's semantics: owner scoping, case-insensitive substring search,
// name-ascending order.
type fakeContacts struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]domain.Contact
}

func newFakeContacts() *fakeContacts {
	return &fakeContacts{byID: make(map[uint]domain.Contact)}
}

func (f *fakeContacts) List(_ context.Context, owner uint, search string) ([]domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	term := strings.ToLower(strings.TrimSpace(search))
	var list []domain.Contact
	for _, c := range f.byID {
		if c.UserID != owner {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Phone), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) {
			continue
		}
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *fakeContacts) Get(_ context.Context, owner, id uint) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.UserID != owner {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (f *fakeContacts) Create(_ context.Context, owner uint, name, phone, email string) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(name) == "" {
		return nil, store.ErrNameRequired
	}
	f.nextID++
	c := domain.Contact{ID: f.nextID, Name: name, Phone: phone, Email: email, UserID: owner}
	f.byID[c.ID] = c
	return &c, nil
}

func (f *fakeContacts) Update(_ context.Context, owner, id uint, name string, phone, email *string) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(name) == "" {
		return nil, store.ErrNameRequired
	}
	c, ok := f.byID[id]
	if !ok || c.UserID != owner {
		return nil, store.ErrNotFound
	}
	c.Name = name
	if phone != nil {
		c.Phone = *phone
	}
	if email != nil {
		c.Email = *email
	}
	f.byID[id] = c
	return &c, nil
}

func (f *fakeContacts) Delete(_ context.Context, owner, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.UserID != owner {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeContacts) Count(_ context.Context, owner uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.byID {
		if c.UserID == owner {
			n++
		}
	}
	return n, nil
}
