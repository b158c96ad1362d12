package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/internal/report"
	"github.com/garyjia/stocklist/internal/segment"
)

// Canonical column names of the structured input layout.
const (
	fieldType     = "类型"
	fieldPattern  = "图案"
	fieldColor    = "颜色"
	fieldSize     = "规格"
	fieldQuantity = "数量"
)

// fieldAliases maps each canonical column to the header spellings seen
// in supplier workbooks. Matching is case-insensitive on trimmed
// headers.
var fieldAliases = map[string][]string{
	fieldType:     {"类型", "宝贝类型", "商品信息", "产品类型"},
	fieldPattern:  {"图案", "图案名称", "花纹", "印花"},
	fieldColor:    {"颜色", "色彩", "色系"},
	fieldSize:     {"规格", "尺寸", "尺码"},
	fieldQuantity: {"数量", "件数", "总数", "库存"},
}

// Raw description layouts carry one free-text column that needs
// segmentation instead of separate color/pattern/size columns.
var (
	descriptionAliases = []string{"宝贝规格", "商品描述", "规格描述"}
	nameAliases        = []string{"宝贝名称", "商品名称", "品名"}
)

// summaryKeywords mark subtotal rows injected by the source system.
var summaryKeywords = []string{"汇总", "合计"}

// Reader loads stock records from supplier workbooks. Structured
// workbooks map columns directly; raw description workbooks go through
// the segmentation pipeline.
type Reader struct {
	extractor *segment.Extractor
	logger    *zap.Logger
}

func NewReader(extractor *segment.Extractor, logger *zap.Logger) *Reader {
	return &Reader{
		extractor: extractor,
		logger:    logger,
	}
}

// Read loads records from the first sheet of the workbook at path.
func (r *Reader) Read(path string) ([]models.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: workbook has no data rows", report.ErrNoRecords)
	}

	header := rows[0]
	cols := matchColumns(header, fieldAliases)

	if hasStructuredColumns(cols) {
		// A structured workbook without a quantity column would tally every
		// cell as zero; that is unusable input, not a zero-filled report.
		if cols[fieldQuantity] < 0 {
			return nil, fmt.Errorf("%w: no recognizable 数量 column", report.ErrMissingField)
		}
		r.logger.Debug("Reading structured layout", zap.String("path", path))
		return r.readStructured(rows[1:], cols)
	}

	descCol := matchAny(header, descriptionAliases)
	if descCol < 0 {
		return nil, fmt.Errorf("%w: no recognizable 颜色/规格 or description column", report.ErrMissingField)
	}
	r.logger.Debug("Reading description layout", zap.String("path", path))
	return r.readDescriptions(rows[1:], descCol, matchAny(header, nameAliases), cols[fieldQuantity])
}

// readStructured maps one row to one record. Subtotal rows are skipped;
// a blank type cell inherits the value above it.
func (r *Reader) readStructured(rows [][]string, cols map[string]int) ([]models.Record, error) {
	var records []models.Record
	lastType := ""
	for _, row := range rows {
		if isSummaryRow(row) {
			continue
		}

		typeName := strings.TrimSpace(cell(row, cols[fieldType]))
		if typeName == "" {
			typeName = lastType
		} else {
			lastType = typeName
		}
		size := strings.TrimSpace(cell(row, cols[fieldSize]))
		if typeName == "" || size == "" {
			continue
		}

		pattern := strings.TrimSpace(cell(row, cols[fieldPattern]))
		if pattern == "" {
			pattern = segment.NoPattern
		}
		color := strings.TrimSpace(cell(row, cols[fieldColor]))
		if color == "" {
			color = segment.NoColor
		}

		records = append(records, models.Record{
			Type:     typeName,
			Pattern:  pattern,
			Color:    color,
			Size:     size,
			Quantity: parseQuantity(cell(row, cols[fieldQuantity])),
		})
	}
	if len(records) == 0 {
		return nil, report.ErrNoRecords
	}
	return records, nil
}

// readDescriptions runs the segmentation pipeline over a free-text
// description column. The product name column, when present, supplies
// the type and inherits downward across merged cells.
func (r *Reader) readDescriptions(rows [][]string, descCol, nameCol, qtyCol int) ([]models.Record, error) {
	var records []models.Record
	lastName := ""
	for _, row := range rows {
		if isSummaryRow(row) {
			continue
		}

		typeName := lastName
		if nameCol >= 0 {
			if name := strings.TrimSpace(cell(row, nameCol)); name != "" {
				typeName = name
				lastName = name
			}
		}
		if typeName == "" {
			typeName = "未命名商品"
		}

		desc := strings.TrimSpace(cell(row, descCol))
		if desc == "" {
			continue
		}

		front, back := segment.SplitOutsideParentheses(desc, segment.DefaultSeparators)
		color, pattern := r.extractor.ColorPattern(front)

		quantity := 0
		haveQty := false
		if qtyCol >= 0 {
			if q := strings.TrimSpace(cell(row, qtyCol)); q != "" {
				quantity = parseQuantity(q)
				haveQty = true
			}
		}
		if !haveQty {
			if q, cleaned, ok := segment.Quantity(back); ok {
				quantity = q
				back = cleaned
			}
		}

		size, _ := segment.SizeRemark(back)
		if size == "" {
			size = "均码"
		}

		records = append(records, models.Record{
			Type:     typeName,
			Pattern:  pattern,
			Color:    color,
			Size:     size,
			Quantity: quantity,
		})
	}
	if len(records) == 0 {
		return nil, report.ErrNoRecords
	}
	return records, nil
}

func matchColumns(header []string, aliases map[string][]string) map[string]int {
	cols := make(map[string]int, len(aliases))
	for field := range aliases {
		cols[field] = -1
	}
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for field, names := range aliases {
			if cols[field] >= 0 {
				continue
			}
			for _, name := range names {
				if normalized == strings.ToLower(name) {
					cols[field] = i
					break
				}
			}
		}
	}
	return cols
}

func matchAny(header []string, names []string) int {
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if normalized == strings.ToLower(name) {
				return i
			}
		}
	}
	return -1
}

func hasStructuredColumns(cols map[string]int) bool {
	return cols[fieldType] >= 0 && cols[fieldColor] >= 0 && cols[fieldSize] >= 0
}

func isSummaryRow(row []string) bool {
	for _, v := range row {
		for _, kw := range summaryKeywords {
			if strings.Contains(v, kw) {
				return true
			}
		}
	}
	return false
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// parseQuantity coerces a cell to an integer count. Decimal strings are
// truncated; anything unparseable counts as 0.
func parseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
