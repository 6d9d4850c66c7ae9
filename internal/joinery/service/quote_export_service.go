package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/xuri/excelize/v2"
)

// QuoteExportService renders a quote's joinery items as an xlsx workbook
type QuoteExportService struct {
	qpRepo   *repository.QuoteProjectRepository
	itemRepo *repository.JoineryItemRepository
}

// NewQuoteExportService creates the quote export service
func NewQuoteExportService(qpRepo *repository.QuoteProjectRepository, itemRepo *repository.JoineryItemRepository) *QuoteExportService {
	return &QuoteExportService{qpRepo: qpRepo, itemRepo: itemRepo}
}

var quoteExportHeaders = []string{
	"Item", "Cabinets", "Face Material", "Carcass Material",
	"Hinge Hardware", "Drawer Hardware", "Notes",
}

var cabinetExportHeaders = []string{
	"Item", "Template", "Width", "Height", "Depth", "Qty", "Notes",
}

// Export builds the workbook: one sheet summarising items, one listing
// every cabinet. Returns the file and a suggested filename.
func (s *QuoteExportService) Export(ctx context.Context, quoteProjectID string) (*excelize.File, string, error) {
	qp, err := s.qpRepo.FindByID(ctx, quoteProjectID)
	if err != nil {
		return nil, "", err
	}

	items, err := s.itemRepo.FindByQuoteProject(ctx, quoteProjectID)
	if err != nil {
		return nil, "", fmt.Errorf("list items: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Quote"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s %s", qp.QuoteNumber, qp.Name))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	if qp.Customer != nil {
		f.SetCellValue(sheet, "A2", qp.Customer.CompanyName)
	}
	if qp.Address != nil {
		f.SetCellValue(sheet, "A3", *qp.Address)
	}

	headerRow := 5
	for i, h := range quoteExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, headerRow)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := headerRow + 1 + rowIdx
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), len(item.Cabinets))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), materialName(item.FaceMaterial1))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), materialName(item.CarcassMaterial))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), hardwareName(item.HingeHardware))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), hardwareName(item.DrawerHardware))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Notes)
	}

	summaryRow := headerRow + 1 + len(items)
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), qp.TotalAmount)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	colWidths := []float64{24, 10, 20, 20, 20, 20, 30}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	s.writeCabinetSheet(f, boldStyle, items)

	filename := fmt.Sprintf("Quote_%s.xlsx", qp.QuoteNumber)
	return f, filename, nil
}

func (s *QuoteExportService) writeCabinetSheet(f *excelize.File, boldStyle int, items []entity.JoineryItem) {
	sheet := "Cabinets"
	f.NewSheet(sheet)

	for i, h := range cabinetExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	row := 2
	for _, item := range items {
		for _, cab := range item.Cabinets {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Name)
			if cab.Template != nil {
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%s %s", cab.Template.Category, cab.Template.Type))
			}
			if cab.Width != nil {
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *cab.Width)
			} else if cab.Template != nil {
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), cab.Template.Width)
			}
			if cab.Height != nil {
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *cab.Height)
			} else if cab.Template != nil {
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), cab.Template.Height)
			}
			if cab.Depth != nil {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *cab.Depth)
			} else if cab.Template != nil {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), cab.Template.Depth)
			}
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), cab.Quantity)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), cab.Notes)
			row++
		}
	}

	colWidths := []float64{24, 20, 10, 10, 10, 6, 30}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
}

func materialName(m *entity.Material) string {
	if m == nil {
		return ""
	}
	return m.Name
}

func hardwareName(h *entity.Hardware) string {
	if h == nil {
		return ""
	}
	return h.Name
}
