package report

// Column bounds for every rendered table.
const (
	MinColumns = 6
	MaxColumns = 10
)

// Cell labels shared by every block.
const (
	colorLabel    = "颜色"
	rowTotalLabel = "行合计"
	totalRowLabel = "合计"
)

// TableSpec is a fully planned table ready for rendering.
type TableSpec struct {
	Title            string
	Headers          []string
	Rows             [][]interface{}
	ColumnCount      int
	TotalColumnIndex int // 1-based within the block
	VisibleSizes     int // size columns actually rendered
	RowCount         int
}

// Height is the number of rows a rendered block occupies: title band,
// header band, data rows and total row.
func (s TableSpec) Height() int {
	return s.RowCount + 3
}

// PlanTable shapes one tally into a renderable table. The column count is
// clamped to [MinColumns, MaxColumns]: narrow tables get empty padding
// headers, wide tables drop excess size columns from display. Row totals
// are computed over all sizes before truncation, so a hidden size column
// still counts toward its row's total.
func PlanTable(title string, t TallyTable) TableSpec {
	baseColumns := len(t.Sizes) + 2 // color label + sizes + row total

	columns := baseColumns
	visible := len(t.Sizes)
	switch {
	case columns < MinColumns:
		columns = MinColumns
	case columns > MaxColumns:
		columns = MaxColumns
		visible = MaxColumns - 2
	}

	headers := make([]string, columns)
	headers[0] = colorLabel
	for i := 0; i < visible; i++ {
		headers[1+i] = t.Sizes[i]
	}
	headers[1+visible] = rowTotalLabel
	// columns past the row-total header stay empty padding

	totalColumn := len(t.Sizes) + 2
	if totalColumn > columns {
		totalColumn = columns
	}

	rows := make([][]interface{}, 0, len(t.Colors))
	for _, color := range t.Colors {
		row := make([]interface{}, columns)
		row[0] = color
		for i := 0; i < visible; i++ {
			row[1+i] = t.Quantity(color, t.Sizes[i])
		}
		row[1+visible] = t.RowTotal(color)
		for i := visible + 2; i < columns; i++ {
			row[i] = ""
		}
		rows = append(rows, row)
	}

	return TableSpec{
		Title:            title,
		Headers:          headers,
		Rows:             rows,
		ColumnCount:      columns,
		TotalColumnIndex: totalColumn,
		VisibleSizes:     visible,
		RowCount:         len(rows),
	}
}
