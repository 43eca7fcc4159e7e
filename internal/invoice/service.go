package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDraft is returned by Session.Save when the draft fails validation.
var ErrInvalidDraft = errors.New("invoice: draft is not valid")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// List returns all saved invoices, newest first. Missing or corrupt data
	// degrades to an empty list; List never fails.
	List(ctx context.Context) []Invoice
	// Save prepends the invoice to the stored list. Write failures propagate.
	Save(ctx context.Context, inv Invoice) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByDay(ctx context.Context, day string) error
	ClearAll(ctx context.Context) error
}

type Service struct {
	repo  Repository
	newID IDFunc
	now   func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: NewID,
		now:   time.Now,
	}
}

// NewServiceWithClock is NewService with an injected id generator and clock.
func NewServiceWithClock(repo Repository, newID IDFunc, now func() time.Time) *Service {
	return &Service{repo: repo, newID: newID, now: now}
}

type SaveParams struct {
	Items       []Item
	TotalAmount int64
	Note        string
}

// Save assigns the invoice its identity and timestamp and persists it. The
// total is stored as given; validation is the draft layer's job, not the
// storage layer's.
func (s *Service) Save(ctx context.Context, params SaveParams) (*Invoice, error) {
	inv := Invoice{
		ID:          s.newID(),
		CreatedAt:   Timestamp(s.now()),
		Items:       params.Items,
		TotalAmount: params.TotalAmount,
		Note:        params.Note,
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("saving invoice: %w", err)
	}

	return &inv, nil
}

func (s *Service) List(ctx context.Context) []Invoice {
	return s.repo.List(ctx)
}

// DayStats reduces the stored invoices to per-day totals, newest day first.
func (s *Service) DayStats(ctx context.Context) []DayStat {
	return ComputeDayStats(s.repo.List(ctx))
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) DeleteByDay(ctx context.Context, day string) error {
	return s.repo.DeleteByDay(ctx, day)
}

func (s *Service) ClearAll(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}
