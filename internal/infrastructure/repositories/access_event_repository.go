package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
)

// AccessEventRepositoryImpl implements domain.AccessEventRepository using GORM
type AccessEventRepositoryImpl struct {
	db *gorm.DB
}

// DBAccessEvent represents the database model for an audit trail entry
type DBAccessEvent struct {
	ID          uint      `gorm:"primaryKey"`
	SubjectName string    `gorm:"size:255"`
	Role        string    `gorm:"size:32"`
	Method      string    `gorm:"index;size:16"`
	Direction   string    `gorm:"size:8"`
	Granted     bool      `gorm:"index"`
	Reason      string    `gorm:"size:255"`
	Confidence  int
	OccurredAt  time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccessEvent) TableName() string {
	return "access_events"
}

// NewAccessEventRepository creates a new audit trail repository
func NewAccessEventRepository(db *gorm.DB) domain.AccessEventRepository {
	return &AccessEventRepositoryImpl{db: db}
}

// Record implements domain.AccessEventRepository
func (r *AccessEventRepositoryImpl) Record(ctx context.Context, event *domain.AccessEvent) error {
	dbEvent := &DBAccessEvent{
		SubjectName: event.SubjectName,
		Role:        string(event.Role),
		Method:      string(event.Method),
		Direction:   string(event.Direction),
		Granted:     event.Granted,
		Reason:      event.Reason,
		Confidence:  event.Confidence,
		OccurredAt:  event.OccurredAt,
	}
	if err := r.db.WithContext(ctx).Create(dbEvent).Error; err != nil {
		return err
	}
	event.ID = dbEvent.ID
	return nil
}

// Recent implements domain.AccessEventRepository
func (r *AccessEventRepositoryImpl) Recent(ctx context.Context, limit int) ([]*domain.AccessEvent, error) {
	var dbEvents []DBAccessEvent
	err := r.db.WithContext(ctx).Order("occurred_at DESC").Limit(limit).Find(&dbEvents).Error
	if err != nil {
		return nil, err
	}

	events := make([]*domain.AccessEvent, 0, len(dbEvents))
	for i := range dbEvents {
		e := dbEvents[i]
		events = append(events, &domain.AccessEvent{
			ID:          e.ID,
			SubjectName: e.SubjectName,
			Role:        domain.AccessRole(e.Role),
			Method:      domain.AccessMethod(e.Method),
			Direction:   domain.AccessDirection(e.Direction),
			Granted:     e.Granted,
			Reason:      e.Reason,
			Confidence:  e.Confidence,
			OccurredAt:  e.OccurredAt,
		})
	}
	return events, nil
}
