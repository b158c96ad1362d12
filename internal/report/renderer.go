package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Renderer materializes planned blocks into the workbook.
type Renderer struct {
	f      *excelize.File
	styles *StylePolicy
	logger *zap.Logger
}

// NewRenderer creates a renderer writing to f with the given style policy.
func NewRenderer(f *excelize.File, styles *StylePolicy, logger *zap.Logger) *Renderer {
	return &Renderer{
		f:      f,
		styles: styles,
		logger: logger,
	}
}

// RenderBlock writes one block at its anchor and returns the sheet row of
// its total row. Every cell inside the block rectangle gets the full thin
// border, the title band included.
func (r *Renderer) RenderBlock(sheet string, b Block) (int, error) {
	spec := b.Spec
	titleRow := b.Row
	headerRow := titleRow + 1
	dataStart := headerRow + 1
	dataEnd := dataStart + spec.RowCount - 1
	totalRow := dataEnd + 1
	colEnd := b.EndCol()

	// Title band: one row merged across the block width.
	topLeft, err := excelize.CoordinatesToCellName(b.Col, titleRow)
	if err != nil {
		return 0, err
	}
	topRight, err := excelize.CoordinatesToCellName(colEnd, titleRow)
	if err != nil {
		return 0, err
	}
	if err := r.f.MergeCell(sheet, topLeft, topRight); err != nil {
		return 0, fmt.Errorf("failed to merge title band: %w", err)
	}
	if err := r.f.SetCellValue(sheet, topLeft, spec.Title); err != nil {
		return 0, fmt.Errorf("failed to set title: %w", err)
	}
	// Styling the whole merged range keeps the border on every edge cell.
	if err := r.styleRect(sheet, b.Col, titleRow, colEnd, titleRow, r.styles.Title); err != nil {
		return 0, err
	}

	// Header band.
	for i, header := range spec.Headers {
		cell, err := excelize.CoordinatesToCellName(b.Col+i, headerRow)
		if err != nil {
			return 0, err
		}
		if err := r.f.SetCellValue(sheet, cell, header); err != nil {
			return 0, fmt.Errorf("failed to set header %q: %w", header, err)
		}
	}
	if err := r.styleRect(sheet, b.Col, headerRow, colEnd, headerRow, r.styles.Header); err != nil {
		return 0, err
	}

	// Data rows: fills banded by row parity; the color label and row-total
	// cells are bold.
	for offset, row := range spec.Rows {
		rowNum := dataStart + offset
		banded := offset%2 == 1
		for i, value := range row {
			cell, err := excelize.CoordinatesToCellName(b.Col+i, rowNum)
			if err != nil {
				return 0, err
			}
			if err := r.f.SetCellValue(sheet, cell, value); err != nil {
				return 0, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
			bold := i == 0 || i+1 == spec.TotalColumnIndex
			if err := r.f.SetCellStyle(sheet, cell, cell, r.dataStyle(banded, bold)); err != nil {
				return 0, err
			}
		}
	}

	// Total row: label cell, one aggregate per visible size column, the
	// grand aggregate in the row-total column. Every total cell references
	// its column's data range so the sheet recalculates after edits.
	labelCell, err := excelize.CoordinatesToCellName(b.Col, totalRow)
	if err != nil {
		return 0, err
	}
	if err := r.f.SetCellValue(sheet, labelCell, totalRowLabel); err != nil {
		return 0, fmt.Errorf("failed to set total label: %w", err)
	}
	for i := 0; i < spec.VisibleSizes; i++ {
		if err := r.setColumnSum(sheet, b.Col+1+i, dataStart, dataEnd, totalRow); err != nil {
			return 0, err
		}
	}
	if err := r.setColumnSum(sheet, b.Col+spec.TotalColumnIndex-1, dataStart, dataEnd, totalRow); err != nil {
		return 0, err
	}
	// Padding columns get the title fill too, keeping the bottom edge of
	// the block visually uniform.
	if err := r.styleRect(sheet, b.Col, totalRow, colEnd, totalRow, r.styles.Title); err != nil {
		return 0, err
	}

	// Fixed geometry: constant row height and column width per block.
	for row := titleRow; row <= totalRow; row++ {
		if err := r.f.SetRowHeight(sheet, row, blockRowHeight); err != nil {
			return 0, err
		}
	}
	for col := b.Col; col <= colEnd; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return 0, err
		}
		if err := r.f.SetColWidth(sheet, name, name, blockColWidth); err != nil {
			return 0, err
		}
	}

	r.logger.Debug("Rendered block",
		zap.String("sheet", sheet),
		zap.String("title", spec.Title),
		zap.Int("row", b.Row),
		zap.Int("col", b.Col),
		zap.Int("end_row", totalRow))

	return totalRow, nil
}

// ClearRect strips borders from a rectangle strictly outside any block.
// Degenerate rectangles are ignored.
func (r *Renderer) ClearRect(sheet string, col1, row1, col2, row2 int) error {
	if col2 < col1 || row2 < row1 {
		return nil
	}
	return r.styleRect(sheet, col1, row1, col2, row2, r.styles.Spacer)
}

func (r *Renderer) dataStyle(banded, bold bool) int {
	switch {
	case banded && bold:
		return r.styles.DataBandedBold
	case banded:
		return r.styles.DataBanded
	case bold:
		return r.styles.DataBold
	default:
		return r.styles.Data
	}
}

func (r *Renderer) setColumnSum(sheet string, col, dataStart, dataEnd, totalRow int) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col, totalRow)
	if err != nil {
		return err
	}
	formula := fmt.Sprintf("SUM(%s%d:%s%d)", name, dataStart, name, dataEnd)
	if err := r.f.SetCellFormula(sheet, cell, formula); err != nil {
		return fmt.Errorf("failed to set formula at %s: %w", cell, err)
	}
	return nil
}

func (r *Renderer) styleRect(sheet string, col1, row1, col2, row2, style int) error {
	topLeft, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(sheet, topLeft, bottomRight, style)
}
