package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specWith(title string, columns, rows int) TableSpec {
	return TableSpec{
		Title:       title,
		ColumnCount: columns,
		RowCount:    rows,
	}
}

func TestPackSummary_StacksWidestFirst(t *testing.T) {
	specs := []TableSpec{
		specWith("narrow", 6, 2),
		specWith("wide", 10, 3),
		specWith("middle", 8, 1),
	}

	blocks, err := PackSummary(specs)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, "wide", blocks[0].Spec.Title)
	assert.Equal(t, "middle", blocks[1].Spec.Title)
	assert.Equal(t, "narrow", blocks[2].Spec.Title)

	// Every block anchors at the left column.
	for _, b := range blocks {
		assert.Equal(t, LeftStartCol, b.Col)
	}

	// wide occupies rows 1-6, so middle starts at 8, narrow at 13.
	assert.Equal(t, 1, blocks[0].Row)
	assert.Equal(t, 8, blocks[1].Row)
	assert.Equal(t, 13, blocks[2].Row)
}

func TestPackSummary_EqualWidthKeepsInputOrder(t *testing.T) {
	specs := []TableSpec{
		specWith("first", 7, 2),
		specWith("second", 7, 2),
	}

	blocks, err := PackSummary(specs)
	require.NoError(t, err)
	assert.Equal(t, "first", blocks[0].Spec.Title)
	assert.Equal(t, "second", blocks[1].Spec.Title)
}

func TestPackDetail_PairsWithinBands(t *testing.T) {
	// Three narrow tables: two pair up, the third starts a new band row
	// below the taller of the pair.
	specs := []TableSpec{
		specWith("a", 7, 4),
		specWith("b", 7, 2),
		specWith("c", 6, 1),
	}

	bands, err := PackDetail(specs)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	// Ascending width: c (6) pairs with a (7), then b (7) alone.
	first := bands[0]
	assert.Equal(t, "c", first.Left.Spec.Title)
	require.NotNil(t, first.Right)
	assert.Equal(t, "a", first.Right.Spec.Title)
	assert.Equal(t, LeftStartCol, first.Left.Col)
	assert.Equal(t, RightStartCol, first.Right.Col)
	assert.Equal(t, first.Left.Row, first.Right.Row)

	// a is taller (7 rows, ends at row 7), so the next band starts at 9.
	second := bands[1]
	assert.Equal(t, "b", second.Left.Spec.Title)
	assert.Nil(t, second.Right)
	assert.Equal(t, 9, second.Left.Row)
}

func TestPackDetail_NarrowBandBeforeWide(t *testing.T) {
	specs := []TableSpec{
		specWith("wide", 9, 2),
		specWith("narrow", 6, 2),
	}

	bands, err := PackDetail(specs)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	// The 6-7 column band renders before the 8-10 band even though the
	// wide table came first.
	assert.Equal(t, "narrow", bands[0].Left.Spec.Title)
	assert.Equal(t, "wide", bands[1].Left.Spec.Title)
}

func TestValidateBlocks(t *testing.T) {
	t.Run("rejects out of bounds columns", func(t *testing.T) {
		err := validateBlocks([]Block{
			{Spec: specWith("too wide", 11, 2), Row: 1, Col: 1},
		})
		assert.ErrorIs(t, err, ErrColumnBounds)
	})

	t.Run("rejects overlapping rectangles", func(t *testing.T) {
		err := validateBlocks([]Block{
			{Spec: specWith("a", 6, 3), Row: 1, Col: 1},
			{Spec: specWith("b", 6, 3), Row: 4, Col: 3},
		})
		assert.ErrorIs(t, err, ErrBlockOverlap)
	})

	t.Run("accepts disjoint rectangles", func(t *testing.T) {
		err := validateBlocks([]Block{
			{Spec: specWith("a", 6, 3), Row: 1, Col: 1},
			{Spec: specWith("b", 6, 3), Row: 1, Col: 12},
		})
		assert.NoError(t, err)
	})
}
