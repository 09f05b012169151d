package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockPersonRepository implements domain.PersonRepository interface for testing
type MockPersonRepository struct {
	CreateFunc      func(ctx context.Context, person *domain.Person) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Person, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Person, error)
	FindByUnitFunc  func(ctx context.Context, unit string) ([]*domain.Person, error)
	UpdateFunc      func(ctx context.Context, person *domain.Person) error
}

// NewMockPersonRepository creates a new MockPersonRepository with default behaviors
func NewMockPersonRepository() *MockPersonRepository {
	return &MockPersonRepository{}
}

// Create adds a person to the directory
func (m *MockPersonRepository) Create(ctx context.Context, person *domain.Person) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, person)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a person by email
func (m *MockPersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrPersonNotFound
}

// FindByID finds a person by ID
func (m *MockPersonRepository) FindByID(ctx context.Context, id uint) (*domain.Person, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrPersonNotFound
}

// FindByUnit lists the active people registered to a unit
func (m *MockPersonRepository) FindByUnit(ctx context.Context, unit string) ([]*domain.Person, error) {
	if m.FindByUnitFunc != nil {
		return m.FindByUnitFunc(ctx, unit)
	}
	// Default behavior: empty unit
	return nil, nil
}

// Update updates a person
func (m *MockPersonRepository) Update(ctx context.Context, person *domain.Person) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, person)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PersonRepository = (*MockPersonRepository)(nil)
