package report

import "github.com/xuri/excelize/v2"

// Fill colors carried over from the legacy workbook theme.
const (
	titleFillColor  = "538DD5"
	headerFillColor = "B8CCE4"
	whiteFillColor  = "FFFFFF"
)

// Fixed block geometry.
const (
	blockRowHeight = 24
	blockColWidth  = 7.5
)

// StylePolicy holds the excelize style IDs for one document. The styles
// are registered once per file and immutable afterwards; the renderer
// receives the policy explicitly instead of holding styling state.
type StylePolicy struct {
	Title          int // bold, title fill; also the total row
	Header         int // bold, header fill
	Data           int
	DataBold       int
	DataBanded     int
	DataBandedBold int
	Spacer         int // no border, white fill
}

// NewStylePolicy registers the block styles on f. All bordered styles
// carry the full four-side thin border; the spacer style carries none.
func NewStylePolicy(f *excelize.File) (*StylePolicy, error) {
	thinBorder := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	build := func(bold bool, fill string, bordered bool) (int, error) {
		style := &excelize.Style{
			Font:      &excelize.Font{Bold: bold, Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: centered,
		}
		if bordered {
			style.Border = thinBorder
		}
		return f.NewStyle(style)
	}

	var p StylePolicy
	var err error
	if p.Title, err = build(true, titleFillColor, true); err != nil {
		return nil, err
	}
	if p.Header, err = build(true, headerFillColor, true); err != nil {
		return nil, err
	}
	if p.Data, err = build(false, whiteFillColor, true); err != nil {
		return nil, err
	}
	if p.DataBold, err = build(true, whiteFillColor, true); err != nil {
		return nil, err
	}
	if p.DataBanded, err = build(false, headerFillColor, true); err != nil {
		return nil, err
	}
	if p.DataBandedBold, err = build(true, headerFillColor, true); err != nil {
		return nil, err
	}
	if p.Spacer, err = build(false, whiteFillColor, false); err != nil {
		return nil, err
	}
	return &p, nil
}
