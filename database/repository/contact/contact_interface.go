package contactRepo

import (
	"errors"

	"agendador/models"
)

// ErrNotFound is returned when no contact matches the given name.
var ErrNotFound = errors.New("contact not found")

// ErrDuplicate is returned when an upsert violates a unique constraint,
// typically an email already bound to a different name.
var ErrDuplicate = errors.New("contact already exists")

// ContactRepository defines methods for contact directory data access.
type ContactRepository interface {
	// GetByName retrieves a contact by name, case-insensitively.
	GetByName(name string) (*models.Contact, error)
	// GetAll retrieves all contacts ordered by name.
	GetAll() ([]models.Contact, error)
	// Upsert inserts a contact or, when the name already exists,
	// overwrites its email. Returns the stored entry.
	Upsert(name, email string) (*models.Contact, error)
	// Delete removes a contact by name.
	Delete(name string) error
}
