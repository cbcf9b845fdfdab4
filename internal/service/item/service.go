// Package item implements the item lifecycle: create, partial update,
// due-date renewal, soft delete, filtered listing, and the append-only
// history trail.
//
// Every state-changing update or renewal snapshots the item's resulting
// state into item_history within the same transaction, so a failed history
// write rolls the mutation back. Creation and removal never write history.
package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/pkg/ctxutil"
)

// itemRepo defines the item repository interface needed by the service.
type itemRepo interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
}

// historyRepo defines the history repository interface needed by the service.
type historyRepo interface {
	Append(ctx context.Context, h domain.ItemHistory) (domain.ItemHistory, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.ItemHistory, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// detailCache caches resolved item details, evicted on every mutation.
type detailCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Item, bool)
	Set(ctx context.Context, item *domain.Item)
	Evict(ctx context.Context, id uuid.UUID)
}

// Service implements item lifecycle operations.
type Service struct {
	log     *slog.Logger
	items   itemRepo
	history historyRepo
	tx      txManager
	cache   detailCache
}

// NewService creates a new item service. cache may be nil to disable caching.
func NewService(
	logger *slog.Logger,
	items itemRepo,
	history historyRepo,
	tx txManager,
	cache detailCache,
) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		log:     logger.With("service", "item"),
		items:   items,
		history: history,
		tx:      tx,
		cache:   cache,
	}
}

// Create persists a new item owned by the context user. The initial state
// has no history rows.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Item, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	status := domain.ItemStatusPlanned
	if in.Status != nil {
		status = *in.Status
	}

	now := time.Now().UTC()
	item := &domain.Item{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		CategoryID:  in.CategoryID,
		AssigneeID:  in.AssigneeID,
		Amount:      in.Amount,
		ExtraData:   in.ExtraData,
		CreatedByID: actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("item.Create: %w", err)
	}

	s.log.InfoContext(ctx, "item created", slog.String("item_id", created.ID.String()))
	return created, nil
}

// GetByID returns an active item, served from cache when warm.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("item.GetByID: %w", err)
	}

	s.cache.Set(ctx, item)
	return item, nil
}

// List returns active items matching the filter, ordered by due date.
func (s *Service) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("item.List: %w", err)
	}
	return items, nil
}

// Update applies a partial update to an active item and appends a history
// snapshot of the resulting state. Both writes share one transaction: a
// failed snapshot rolls back the update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Item, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		after, err := s.items.Update(ctx, id, in.patch())
		if err != nil {
			return err
		}

		if _, err := s.history.Append(ctx, after.Snapshot(actorID, nil)); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		updated = after
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("item.Update: %w", err)
	}

	s.cache.Evict(ctx, id)
	s.log.InfoContext(ctx, "item updated", slog.String("item_id", id.String()))
	return updated, nil
}

// Renew sets a new due date, optionally reassigns, and always appends a
// history snapshot carrying the given reason. An absent assignee leaves the
// current one in place; an explicit empty assignee unassigns.
func (s *Service) Renew(ctx context.Context, id uuid.UUID, in RenewInput) (*domain.Item, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	patch := domain.ItemPatch{
		DueDate:     &in.DueDate,
		AssigneeID:  in.AssigneeID,
		SetAssignee: in.SetAssignee,
	}

	var renewed *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		after, err := s.items.Update(ctx, id, patch)
		if err != nil {
			return err
		}

		if _, err := s.history.Append(ctx, after.Snapshot(actorID, in.Reason)); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		renewed = after
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("item.Renew: %w", err)
	}

	s.cache.Evict(ctx, id)
	s.log.InfoContext(ctx, "item renewed",
		slog.String("item_id", id.String()),
		slog.Time("due_date", in.DueDate),
	)
	return renewed, nil
}

// Remove soft-deletes an item. History and attachments are preserved.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if err := s.items.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("item.Remove: %w", err)
	}

	s.cache.Evict(ctx, id)
	s.log.InfoContext(ctx, "item removed", slog.String("item_id", id.String()))
	return nil
}

// History returns the item's snapshots, newest first. Soft-deleted items
// keep their history readable.
func (s *Service) History(ctx context.Context, itemID uuid.UUID) ([]domain.ItemHistory, error) {
	records, err := s.history.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("item.History: %w", err)
	}
	return records, nil
}

// noopCache disables caching.
type noopCache struct{}

func (noopCache) Get(context.Context, uuid.UUID) (*domain.Item, bool) { return nil, false }
func (noopCache) Set(context.Context, *domain.Item)                   {}
func (noopCache) Evict(context.Context, uuid.UUID)                    {}
