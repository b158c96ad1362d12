package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/pkg/utils"
)

const (
	summarySheetName  = "类型数据汇总"
	detailSheetSuffix = "明细"
	dateLayout        = "2006年01月02日"
)

// Detail sheets print in landscape with narrow margins so both packing
// columns fit one page width.
var (
	landscape    = "landscape"
	marginLeft   = 0.5
	marginRight  = 0.5
	marginTop    = 0.8
	marginBottom = 0.8
)

// Composer builds the sheets of one workbook from aggregated records.
type Composer struct {
	f        *excelize.File
	renderer *Renderer
	date     time.Time
	logger   *zap.Logger
}

// NewComposer creates a composer writing to f. The date stamps every
// table title.
func NewComposer(f *excelize.File, renderer *Renderer, date time.Time, logger *zap.Logger) *Composer {
	return &Composer{
		f:        f,
		renderer: renderer,
		date:     date,
		logger:   logger,
	}
}

func (c *Composer) dateLabel() string {
	return c.date.Format(dateLayout)
}

// ComposeSummary renames the default sheet and stacks one per-type table
// per tally, widest first, at the left anchor column.
func (c *Composer) ComposeSummary(records []models.Record) error {
	if err := c.f.SetSheetName(c.f.GetSheetName(0), summarySheetName); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	tallies := Aggregate(records, GroupByType)
	specs := make([]TableSpec, 0, len(tallies))
	for _, t := range tallies {
		title := fmt.Sprintf("%s - %s", t.Group, c.dateLabel())
		specs = append(specs, PlanTable(title, t))
	}

	blocks, err := PackSummary(specs)
	if err != nil {
		return err
	}

	for _, b := range blocks {
		endRow, err := c.renderer.RenderBlock(summarySheetName, b)
		if err != nil {
			return err
		}
		if err := c.renderer.ClearRect(summarySheetName, b.Col, endRow+1, b.EndCol(), endRow+BlockSpacing-1); err != nil {
			return err
		}
	}

	c.logger.Info("Composed summary sheet",
		zap.Int("tables", len(blocks)))
	return nil
}

// ComposeDetail builds one per-type detail sheet grouped by pattern. The
// sheet name derives from the type name and must survive Excel's sheet
// naming rules.
func (c *Composer) ComposeDetail(typeName string, records []models.Record) error {
	sheet := utils.SanitizeSheetName(typeName + detailSheetSuffix)
	if _, err := c.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	if err := c.f.SetPageLayout(sheet, &excelize.PageLayoutOptions{Orientation: &landscape}); err != nil {
		return fmt.Errorf("failed to set page layout: %w", err)
	}
	if err := c.f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Left:   &marginLeft,
		Right:  &marginRight,
		Top:    &marginTop,
		Bottom: &marginBottom,
	}); err != nil {
		return fmt.Errorf("failed to set page margins: %w", err)
	}

	tallies := Aggregate(records, GroupByPattern)
	specs := make([]TableSpec, 0, len(tallies))
	for _, t := range tallies {
		title := fmt.Sprintf("%s - %s - %s", typeName, t.Group, c.dateLabel())
		specs = append(specs, PlanTable(title, t))
	}

	bands, err := PackDetail(specs)
	if err != nil {
		return err
	}

	for _, band := range bands {
		bottom, err := c.renderer.RenderBlock(sheet, band.Left)
		if err != nil {
			return err
		}
		if band.Right != nil {
			rightBottom, err := c.renderer.RenderBlock(sheet, *band.Right)
			if err != nil {
				return err
			}
			if rightBottom > bottom {
				bottom = rightBottom
			}
		}

		// The column strip between the pair stays borderless and narrow.
		spacerCol := band.Left.EndCol() + 1
		if spacerCol < RightStartCol {
			if err := c.renderer.ClearRect(sheet, spacerCol, band.Left.Row, RightStartCol-1, bottom); err != nil {
				return err
			}
			name, err := excelize.ColumnNumberToName(spacerCol)
			if err != nil {
				return err
			}
			if err := c.f.SetColWidth(sheet, name, name, SpacerColWidth); err != nil {
				return err
			}
		}

		rightEdge := band.Left.EndCol()
		if band.Right != nil {
			rightEdge = band.Right.EndCol()
		}
		if err := c.renderer.ClearRect(sheet, LeftStartCol, bottom+1, rightEdge, bottom+BlockSpacing-1); err != nil {
			return err
		}
	}

	c.logger.Info("Composed detail sheet",
		zap.String("sheet", sheet),
		zap.Int("tables", len(specs)))
	return nil
}
