package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CatalogImportService loads hardware and material catalog rows from
// supplier CSV price lists. Files exported from Windows tooling often
// arrive as Windows-1252; non-UTF-8 input is decoded before parsing.
type CatalogImportService struct {
	hardwareSvc *HardwareService
	materialSvc *MaterialService
}

// NewCatalogImportService creates the catalog import service
func NewCatalogImportService(hardwareSvc *HardwareService, materialSvc *MaterialService) *CatalogImportService {
	return &CatalogImportService{hardwareSvc: hardwareSvc, materialSvc: materialSvc}
}

// ImportResult summarises one import run
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type catalogRow struct {
	name        string
	description string
	dimension   string
	costPerUnit float64
	supplierID  *string
}

// ImportHardware parses r and creates one hardware item per data row
func (s *CatalogImportService) ImportHardware(ctx context.Context, r io.Reader) (*ImportResult, error) {
	return s.importRows(ctx, r, func(ctx context.Context, row catalogRow) error {
		_, err := s.hardwareSvc.Create(ctx, &CreateHardwareRequest{
			SupplierID:  row.supplierID,
			Name:        row.name,
			Description: row.description,
			Dimension:   row.dimension,
			CostPerUnit: row.costPerUnit,
		})
		return err
	})
}

// ImportMaterials parses r and creates one material per data row
func (s *CatalogImportService) ImportMaterials(ctx context.Context, r io.Reader) (*ImportResult, error) {
	return s.importRows(ctx, r, func(ctx context.Context, row catalogRow) error {
		_, err := s.materialSvc.Create(ctx, &CreateMaterialRequest{
			SupplierID:  row.supplierID,
			Name:        row.name,
			Description: row.description,
			Dimension:   row.dimension,
			CostPerUnit: row.costPerUnit,
		})
		return err
	})
}

func (s *CatalogImportService) importRows(ctx context.Context, r io.Reader, create func(context.Context, catalogRow) error) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if !utf8.Valid(data) {
		// Windows-1252 → UTF-8
		decoded, err := io.ReadAll(transform.NewReader(strings.NewReader(string(data)), charmap.Windows1252.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("decode import file: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return &ImportResult{}, nil
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	result := &ImportResult{}
	for i, record := range records[1:] {
		line := i + 2

		row := catalogRow{
			name:        field(record, "name"),
			description: field(record, "description"),
			dimension:   field(record, "dimension"),
		}
		if row.name == "" {
			result.Skipped++
			continue
		}
		if raw := field(record, "cost_per_unit"); raw != "" {
			cost, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: invalid cost_per_unit %q", line, raw))
				continue
			}
			row.costPerUnit = cost
		}
		if supplierID := field(record, "supplier_id"); supplierID != "" {
			row.supplierID = &supplierID
		}

		if err := create(ctx, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}
