package preset

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=preset
type Repository interface {
	// List returns the stored presets. Missing or corrupt data degrades to an
	// empty list; List never fails.
	List(ctx context.Context) []FruitPreset
	// ReplaceAll overwrites the whole stored list. Write failures propagate.
	ReplaceAll(ctx context.Context, presets []FruitPreset) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) []FruitPreset {
	return s.repo.List(ctx)
}

// ReplaceAll stores the given list as-is, dropping invalid entries first.
// Last write wins; the caller assembles the complete desired list.
func (s *Service) ReplaceAll(ctx context.Context, presets []FruitPreset) error {
	kept := make([]FruitPreset, 0, len(presets))

	for _, p := range presets {
		if p.Valid() {
			kept = append(kept, p)
		}
	}

	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return fmt.Errorf("saving presets: %w", err)
	}

	return nil
}
