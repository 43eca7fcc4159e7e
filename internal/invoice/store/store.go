// Package store persists invoices as a single JSON array in the key-value
// store. Reads are fail-soft: missing or corrupt data becomes an empty list,
// never an error. Writes propagate failures so the UI can tell the user a
// save did not happen.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minhvng/fruitbill/internal/invoice"
	"github.com/minhvng/fruitbill/internal/kvstore"
)

const storageKey = "invoices"

type Store struct {
	kv kvstore.Store
}

func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// List returns the stored invoices, newest first by the convention Save
// maintains. Anything unreadable at the key counts as no data.
func (s *Store) List(ctx context.Context) []invoice.Invoice {
	raw, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			slog.Warn("failed to load invoices", "error", err)
		}

		return nil
	}

	var invoices []invoice.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		slog.Warn("ignoring corrupt invoice data", "error", err)
		return nil
	}

	return invoices
}

// Save prepends the invoice and writes the whole list back.
func (s *Store) Save(ctx context.Context, inv invoice.Invoice) error {
	updated := append([]invoice.Invoice{inv}, s.List(ctx)...)

	return s.write(ctx, updated)
}

// DeleteByID removes the matching invoice. Deleting an id that does not
// exist rewrites the list unchanged and succeeds.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	existing := s.List(ctx)

	updated := make([]invoice.Invoice, 0, len(existing))

	for _, inv := range existing {
		if inv.ID != id {
			updated = append(updated, inv)
		}
	}

	return s.write(ctx, updated)
}

// DeleteByDay removes every invoice created on the given calendar day.
func (s *Store) DeleteByDay(ctx context.Context, day string) error {
	existing := s.List(ctx)

	updated := make([]invoice.Invoice, 0, len(existing))

	for _, inv := range existing {
		if inv.Day() != day {
			updated = append(updated, inv)
		}
	}

	return s.write(ctx, updated)
}

// ClearAll drops the storage key entirely.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Remove(ctx, storageKey); err != nil {
		return fmt.Errorf("clearing invoices: %w", err)
	}

	return nil
}

func (s *Store) write(ctx context.Context, invoices []invoice.Invoice) error {
	raw, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("encoding invoices: %w", err)
	}

	if err := s.kv.Set(ctx, storageKey, raw); err != nil {
		return fmt.Errorf("writing invoices: %w", err)
	}

	return nil
}
