// Package importer bulk-loads fruit presets from CSV price lists.
//
// Expected rows: name,price with the price in thousands of đồng per kg, the
// same unit used for manual entry. Blank and malformed rows (including a
// header row, whose price column is not numeric) are skipped, never fatal.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minhvng/fruitbill/internal/encoding"
	"github.com/minhvng/fruitbill/internal/invoice"
	"github.com/minhvng/fruitbill/internal/preset"
)

type Service struct {
	presets *preset.Service
	newID   invoice.IDFunc
}

func NewService(presets *preset.Service) *Service {
	return &Service{presets: presets, newID: invoice.NewID}
}

type Result struct {
	Added   int
	Skipped int
}

// ImportFile parses the CSV at path and appends its presets to the stored
// list. Unusable rows are counted, not fatal; a failed write propagates.
func (s *Service) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return s.Import(ctx, f)
}

// Import reads presets from r and appends them to the stored list.
func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	parsed, skipped, err := s.Parse(r)
	if err != nil {
		return Result{}, err
	}

	updated := append(s.presets.List(ctx), parsed...)
	if err := s.presets.ReplaceAll(ctx, updated); err != nil {
		return Result{}, err
	}

	return Result{Added: len(parsed), Skipped: skipped}, nil
}

// Parse decodes and parses the CSV without touching storage.
func (s *Service) Parse(r io.Reader) ([]preset.FruitPreset, int, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		presets []preset.FruitPreset
		skipped int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, 0, fmt.Errorf("reading csv: %w", err)
		}

		p, ok := s.parseRow(record)
		if !ok {
			skipped++
			continue
		}

		presets = append(presets, p)
	}

	return presets, skipped, nil
}

func (s *Service) parseRow(record []string) (preset.FruitPreset, bool) {
	if len(record) < 2 {
		return preset.FruitPreset{}, false
	}

	name := strings.TrimSpace(record[0])

	p := preset.FruitPreset{
		ID:         s.newID(),
		Name:       name,
		PricePerKg: invoice.ScalePriceInput(record[1]),
	}

	if !p.Valid() {
		return preset.FruitPreset{}, false
	}

	return p, true
}
