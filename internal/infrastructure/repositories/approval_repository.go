package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/you/gatesvc/domain"
)

// ApprovalRepositoryImpl implements domain.ApprovalRepository using Redis.
// Entries are written without a TTL: a pending authorization stays queued
// until an operator resolves it.
type ApprovalRepositoryImpl struct {
	client   *redis.Client
	prefix   string
	indexKey string
}

// NewApprovalRepository creates a new pending-authorization repository
func NewApprovalRepository(client *redis.Client) domain.ApprovalRepository {
	return &ApprovalRepositoryImpl{
		client:   client,
		prefix:   "approval:",
		indexKey: "approvals",
	}
}

// Save implements domain.ApprovalRepository
func (r *ApprovalRepositoryImpl) Save(ctx context.Context, auth *domain.PendingAuthorization) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal pending authorization: %w", err)
	}

	if err := r.client.Set(ctx, r.prefix+auth.ID, data, 0).Err(); err != nil {
		return err
	}
	return r.client.SAdd(ctx, r.indexKey, auth.ID).Err()
}

// FindByID implements domain.ApprovalRepository
func (r *ApprovalRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.PendingAuthorization, error) {
	data, err := r.client.Get(ctx, r.prefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrApprovalNotFound
		}
		return nil, err
	}

	var auth domain.PendingAuthorization
	if err := json.Unmarshal([]byte(data), &auth); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending authorization: %w", err)
	}
	return &auth, nil
}

// Delete implements domain.ApprovalRepository
func (r *ApprovalRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.prefix+id).Err(); err != nil {
		return err
	}
	return r.client.SRem(ctx, r.indexKey, id).Err()
}

// List implements domain.ApprovalRepository. Entries come back ordered by
// request time so the dashboard shows the oldest visitor first.
func (r *ApprovalRepositoryImpl) List(ctx context.Context) ([]*domain.PendingAuthorization, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey).Result()
	if err != nil {
		return nil, err
	}

	auths := make([]*domain.PendingAuthorization, 0, len(ids))
	for _, id := range ids {
		auth, err := r.FindByID(ctx, id)
		if err == domain.ErrApprovalNotFound {
			// Index entry without a body; drop it and move on.
			r.client.SRem(ctx, r.indexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		auths = append(auths, auth)
	}

	sort.Slice(auths, func(i, j int) bool {
		return auths[i].RequestedAt.Before(auths[j].RequestedAt)
	})
	return auths, nil
}
