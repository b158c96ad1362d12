package report

import (
	"fmt"
	"sort"
)

// Physical grid anchors, 1-based sheet coordinates.
const (
	LeftStartCol  = 1
	RightStartCol = 12

	// BlockSpacing is the row step from one block's total row to the next
	// block's title row; the rows in between are borderless spacers.
	BlockSpacing = 2

	// SpacerColWidth is the width of the borderless column between the two
	// packing columns of a detail sheet.
	SpacerColWidth = 1
)

// narrowBandMax splits detail tables into the 6-7 and 8-10 width bands.
const narrowBandMax = 7

// Block is a TableSpec anchored at a sheet cell. It owns the rectangle
// [Row, EndRow] x [Col, EndCol].
type Block struct {
	Spec TableSpec
	Row  int
	Col  int
}

// EndRow is the sheet row of the block's total row.
func (b Block) EndRow() int {
	return b.Row + b.Spec.Height() - 1
}

// EndCol is the sheet column of the block's right edge.
func (b Block) EndCol() int {
	return b.Col + b.Spec.ColumnCount - 1
}

// BandRow is one horizontal band of the two-column detail layout. Right
// is nil when a band has an odd trailing table.
type BandRow struct {
	Left  Block
	Right *Block
}

// PackSummary stacks tables vertically at the left anchor column, widest
// first, separated by BlockSpacing rows.
func PackSummary(specs []TableSpec) ([]Block, error) {
	ordered := append([]TableSpec(nil), specs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ColumnCount > ordered[j].ColumnCount
	})

	blocks := make([]Block, 0, len(ordered))
	row := 1
	for _, spec := range ordered {
		b := Block{Spec: spec, Row: row, Col: LeftStartCol}
		blocks = append(blocks, b)
		row = b.EndRow() + BlockSpacing
	}

	if err := validateBlocks(blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// PackDetail packs tables two per band row: the 6-7 column band first,
// then 8-10, ascending width within each band. Element 2i anchors at
// LeftStartCol and element 2i+1 at RightStartCol on the same starting
// row; the next pair starts below the taller of the two.
func PackDetail(specs []TableSpec) ([]BandRow, error) {
	ordered := append([]TableSpec(nil), specs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ColumnCount < ordered[j].ColumnCount
	})

	var narrow, wide []TableSpec
	for _, spec := range ordered {
		if spec.ColumnCount <= narrowBandMax {
			narrow = append(narrow, spec)
		} else {
			wide = append(wide, spec)
		}
	}

	var bands []BandRow
	var all []Block
	row := 1
	for _, band := range [][]TableSpec{narrow, wide} {
		for i := 0; i < len(band); i += 2 {
			left := Block{Spec: band[i], Row: row, Col: LeftStartCol}
			br := BandRow{Left: left}
			all = append(all, left)

			bottom := left.EndRow()
			if i+1 < len(band) {
				right := Block{Spec: band[i+1], Row: row, Col: RightStartCol}
				br.Right = &right
				all = append(all, right)
				if right.EndRow() > bottom {
					bottom = right.EndRow()
				}
			}

			bands = append(bands, br)
			row = bottom + BlockSpacing
		}
	}

	if err := validateBlocks(all); err != nil {
		return nil, err
	}
	return bands, nil
}

// validateBlocks asserts the layout invariants: every block inside the
// column bounds and no two occupied rectangles intersecting.
func validateBlocks(blocks []Block) error {
	for _, b := range blocks {
		if b.Spec.ColumnCount < MinColumns || b.Spec.ColumnCount > MaxColumns {
			return fmt.Errorf("%w: %d columns in block at row %d", ErrColumnBounds, b.Spec.ColumnCount, b.Row)
		}
	}
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if overlaps(blocks[i], blocks[j]) {
				return fmt.Errorf("%w: blocks at (%d,%d) and (%d,%d)",
					ErrBlockOverlap, blocks[i].Row, blocks[i].Col, blocks[j].Row, blocks[j].Col)
			}
		}
	}
	return nil
}

func overlaps(a, b Block) bool {
	return a.Row <= b.EndRow() && b.Row <= a.EndRow() &&
		a.Col <= b.EndCol() && b.Col <= a.EndCol()
}
