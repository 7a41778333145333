package bill

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListBills(ctx context.Context) ([]*Bill, error)
	UpdateBill(ctx context.Context, b *Bill) error
	DeleteBill(ctx context.Context, id uuid.UUID) error
}

// ListCache caches the ordered bill list in front of the repository.
// A nil-free implementation is optional; the service works without one.
type ListCache interface {
	GetList(ctx context.Context) ([]*Bill, error)
	SetList(ctx context.Context, bills []*Bill) error
	Invalidate(ctx context.Context) error
}

// EventPublisher publishes bill change events to an external broker.
type EventPublisher interface {
	Publish(topic string, event any) error
}

const eventsTopic = "bill_events"

// Event is emitted after every successful mutation.
type Event struct {
	Type       string    `json:"type"` // bill_created, bill_updated, bill_deleted
	BillID     uuid.UUID `json:"bill_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Service struct {
	repo   Repository
	cache  ListCache
	events EventPublisher
	sf     singleflight.Group
}

type Option func(*Service)

// WithCache enables list caching with invalidation on every write.
func WithCache(c ListCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithEvents enables best-effort change event publishing.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns every bill ordered by creation token ascending.
func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	if s.cache == nil {
		return s.repo.ListBills(ctx)
	}

	v, err, _ := s.sf.Do("list", func() (any, error) {
		if bills, err := s.cache.GetList(ctx); err == nil && bills != nil {
			return bills, nil
		}

		bills, err := s.repo.ListBills(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.cache.SetList(ctx, bills); err != nil {
			slog.Warn("failed to cache bill list", "error", err)
		}

		return bills, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*Bill), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, id)
}

// Create validates the params and inserts a new bill. The store assigns
// the id and the creation token.
func (s *Service) Create(ctx context.Context, params Params) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := &Bill{
		Description: params.Description,
		Amount:      params.Amount,
		DueDate:     params.DueDate,
		Status:      params.Status,
	}
	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "bill_created", b.ID)

	return b, nil
}

// Update replaces every field of the bill except its id and creation
// token, preserving its position on the next reload.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	b := &Bill{
		ID:          id,
		Description: params.Description,
		Amount:      params.Amount,
		DueDate:     params.DueDate,
		Status:      params.Status,
	}
	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return err
	}

	s.afterWrite(ctx, "bill_updated", id)

	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, "bill_deleted", id)

	return nil
}

// afterWrite invalidates the list cache and publishes a change event.
// Both are best-effort: the mutation itself already succeeded.
func (s *Service) afterWrite(ctx context.Context, eventType string, id uuid.UUID) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.Warn("failed to invalidate bill list cache", "error", err)
		}
	}

	if s.events != nil {
		event := Event{Type: eventType, BillID: id, OccurredAt: time.Now().UTC()}
		if err := s.events.Publish(eventsTopic, event); err != nil {
			slog.Warn("failed to publish bill event", "type", eventType, "error", err)
		}
	}
}
