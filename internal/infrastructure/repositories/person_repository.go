package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
)

// PersonRepositoryImpl implements domain.PersonRepository using GORM
type PersonRepositoryImpl struct {
	db *gorm.DB
}

// DBPerson represents the database model for a directory entry
type DBPerson struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"size:255"`
	Email        string         `gorm:"uniqueIndex;size:255"`
	Phone        string         `gorm:"index;size:32"`
	Role         string         `gorm:"index;size:32"`
	Unit         string         `gorm:"index;size:16"`
	PasswordHash string         `gorm:"column:password"`
	IsActive     bool           `gorm:"index"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time      `gorm:"index"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBPerson) TableName() string {
	return "people"
}

// NewPersonRepository creates a new directory repository
func NewPersonRepository(db *gorm.DB) domain.PersonRepository {
	return &PersonRepositoryImpl{db: db}
}

// Create implements domain.PersonRepository
func (r *PersonRepositoryImpl) Create(ctx context.Context, person *domain.Person) error {
	dbPerson := r.domainToDB(person)
	if err := r.db.WithContext(ctx).Create(dbPerson).Error; err != nil {
		return err
	}
	person.ID = dbPerson.ID
	return nil
}

// FindByEmail implements domain.PersonRepository
func (r *PersonRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	var dbPerson DBPerson
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbPerson).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbPerson), nil
}

// FindByID implements domain.PersonRepository
func (r *PersonRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Person, error) {
	var dbPerson DBPerson
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbPerson).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbPerson), nil
}

// FindByUnit implements domain.PersonRepository
func (r *PersonRepositoryImpl) FindByUnit(ctx context.Context, unit string) ([]*domain.Person, error) {
	var dbPeople []DBPerson
	err := r.db.WithContext(ctx).Where("unit = ? AND is_active = ?", unit, true).Find(&dbPeople).Error
	if err != nil {
		return nil, err
	}

	people := make([]*domain.Person, 0, len(dbPeople))
	for i := range dbPeople {
		people = append(people, r.dbToDomain(&dbPeople[i]))
	}
	return people, nil
}

// Update implements domain.PersonRepository
func (r *PersonRepositoryImpl) Update(ctx context.Context, person *domain.Person) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(person)).Error
}

// domainToDB converts a domain person to the database model
func (r *PersonRepositoryImpl) domainToDB(person *domain.Person) *DBPerson {
	return &DBPerson{
		ID:           person.ID,
		Name:         person.Name,
		Email:        person.Email,
		Phone:        person.Phone,
		Role:         string(person.Role),
		Unit:         person.Unit,
		PasswordHash: person.PasswordHash,
		IsActive:     person.IsActive,
	}
}

// dbToDomain converts a database model to the domain person
func (r *PersonRepositoryImpl) dbToDomain(dbPerson *DBPerson) *domain.Person {
	return &domain.Person{
		ID:           dbPerson.ID,
		Name:         dbPerson.Name,
		Email:        dbPerson.Email,
		Phone:        dbPerson.Phone,
		Role:         domain.AccessRole(dbPerson.Role),
		Unit:         dbPerson.Unit,
		PasswordHash: dbPerson.PasswordHash,
		IsActive:     dbPerson.IsActive,
		CreatedAt:    dbPerson.CreatedAt,
		UpdatedAt:    dbPerson.UpdatedAt,
	}
}
