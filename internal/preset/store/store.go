// Package store persists fruit presets as a single JSON array in the
// key-value store, with the same fail-soft read policy as the invoice store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minhvng/fruitbill/internal/kvstore"
	"github.com/minhvng/fruitbill/internal/preset"
)

const storageKey = "fruit_presets"

type Store struct {
	kv kvstore.Store
}

func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) List(ctx context.Context) []preset.FruitPreset {
	raw, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			slog.Warn("failed to load presets", "error", err)
		}

		return nil
	}

	var presets []preset.FruitPreset
	if err := json.Unmarshal(raw, &presets); err != nil {
		slog.Warn("ignoring corrupt preset data", "error", err)
		return nil
	}

	return presets
}

func (s *Store) ReplaceAll(ctx context.Context, presets []preset.FruitPreset) error {
	raw, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("encoding presets: %w", err)
	}

	if err := s.kv.Set(ctx, storageKey, raw); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}

	return nil
}
