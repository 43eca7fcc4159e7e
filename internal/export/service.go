// Package export writes the saved invoice history to a CSV file, one row per
// line item, so the vendor can hand the data to a spreadsheet or an
// accountant. Everything stays on the local disk.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minhvng/fruitbill/internal/invoice"
)

type Service struct {
	invoices *invoice.Service
	now      func() time.Time
}

func NewService(invoices *invoice.Service) *Service {
	return &Service{invoices: invoices, now: time.Now}
}

var header = []string{
	"created_at", "invoice_id", "item", "price_per_kg", "weight_kg", "line_total", "invoice_total", "note",
}

// Export writes all saved invoices to a timestamped CSV under outputDir and
// returns the file path. An empty history still produces a file with just
// the header row.
func (s *Service) Export(ctx context.Context, outputDir string) (string, error) {
	invoices := s.invoices.List(ctx)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("invoices-%s.csv", s.now().UTC().Format("20060102-150405"))
	path := filepath.Join(outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		f.Close()
		return "", fmt.Errorf("writing header: %w", err)
	}

	for _, inv := range invoices {
		for _, it := range inv.Items {
			lineTotal := decimal.NewFromInt(it.PricePerKg).Mul(decimal.NewFromFloat(it.WeightKg))

			record := []string{
				inv.CreatedAt,
				inv.ID,
				it.Name,
				strconv.FormatInt(it.PricePerKg, 10),
				strconv.FormatFloat(it.WeightKg, 'f', -1, 64),
				lineTotal.String(),
				strconv.FormatInt(inv.TotalAmount, 10),
				inv.Note,
			}

			if err := w.Write(record); err != nil {
				f.Close()
				return "", fmt.Errorf("writing invoice %s: %w", inv.ID, err)
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flushing export: %w", err)
	}

	// A buffered write can surface its failure only at close; a full disk
	// must not report a successful export.
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}

	return path, nil
}
