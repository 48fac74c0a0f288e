package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contactRepo "agendador/database/repository/contact"
	"agendador/models"
)

// DirectoryService exposes the contact directory to the dialogue core and the
// REST surface. Lookups never write; Upsert overwrites the email of an
// existing name.
type DirectoryService interface {
	Lookup(ctx context.Context, name string) (*models.Contact, error)
	Upsert(ctx context.Context, name, email string) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Remove(ctx context.Context, name string) error
}

// DefaultDirectoryService is the production implementation.
type DefaultDirectoryService struct {
	Repo contactRepo.ContactRepository
}

// Lookup finds a contact by name, case-insensitively.
func (s *DefaultDirectoryService) Lookup(ctx context.Context, name string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrContactNotFound
	}
	contact, err := s.Repo.GetByName(name)
	if errors.Is(err, contactRepo.ErrNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, &DirectoryError{Op: "lookup", Err: err}
	}
	return contact, nil
}

// Upsert inserts or overwrites a contact by name.
func (s *DefaultDirectoryService) Upsert(ctx context.Context, name, email string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, &DirectoryError{Op: "upsert", Err: fmt.Errorf("name and email are required")}
	}
	contact, err := s.Repo.Upsert(name, email)
	if errors.Is(err, contactRepo.ErrDuplicate) {
		return nil, &DuplicateContactError{Name: name, Email: email}
	}
	if err != nil {
		return nil, &DirectoryError{Op: "upsert", Err: err}
	}
	return contact, nil
}

// List returns all directory entries.
func (s *DefaultDirectoryService) List(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.Repo.GetAll()
	if err != nil {
		return nil, &DirectoryError{Op: "list", Err: err}
	}
	return contacts, nil
}

// Remove deletes a contact by name.
func (s *DefaultDirectoryService) Remove(ctx context.Context, name string) error {
	err := s.Repo.Delete(strings.TrimSpace(name))
	if errors.Is(err, contactRepo.ErrNotFound) {
		return ErrContactNotFound
	}
	if err != nil {
		return &DirectoryError{Op: "remove", Err: err}
	}
	return nil
}
