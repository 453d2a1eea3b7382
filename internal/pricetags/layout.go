package pricetags

import "math"

// Layout describes the tag grid in points. Coordinates are measured from the
// top-left corner of the page.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Spacing    float64
	TagWidth   float64
	TagHeight  float64
}

// Letter is US Letter with 3.5 x 2 inch tags, two across and four down
func Letter() Layout {
	return Layout{
		PageWidth:  612,
		PageHeight: 792,
		Margin:     36,
		Spacing:    36,
		TagWidth:   252,
		TagHeight:  144,
	}
}

// Placement is where one tag goes
type Placement struct {
	Page int
	Row  int
	Col  int
	X    float64
	Y    float64
}

func (l Layout) PerRow() int {
	return fit(l.PageWidth, l.Margin, l.Spacing, l.TagWidth)
}

func (l Layout) PerColumn() int {
	return fit(l.PageHeight, l.Margin, l.Spacing, l.TagHeight)
}

// Capacity is the number of tags on one page
func (l Layout) Capacity() int {
	return l.PerRow() * l.PerColumn()
}

// Pages returns how many pages n tags need
func (l Layout) Pages(n int) int {
	c := l.Capacity()
	if n <= 0 || c == 0 {
		return 0
	}
	return (n + c - 1) / c
}

// Origin returns the top-left corner of the grid; the grid is centered on the page
func (l Layout) Origin() (float64, float64) {
	cols, rows := float64(l.PerRow()), float64(l.PerColumn())
	gridW := cols*l.TagWidth + (cols-1)*l.Spacing
	gridH := rows*l.TagHeight + (rows-1)*l.Spacing
	return (l.PageWidth - gridW) / 2, (l.PageHeight - gridH) / 2
}

// Place lays out n tags row-major, left to right then top to bottom, starting
// a new page when one fills up.
func (l Layout) Place(n int) []Placement {
	capacity := l.Capacity()
	if n <= 0 || capacity == 0 {
		return nil
	}

	left, top := l.Origin()
	perRow := l.PerRow()
	placements := make([]Placement, 0, n)
	for i := range n {
		slot := i % capacity
		row, col := slot/perRow, slot%perRow
		placements = append(placements, Placement{
			Page: i / capacity,
			Row:  row,
			Col:  col,
			X:    left + float64(col)*(l.TagWidth+l.Spacing),
			Y:    top + float64(row)*(l.TagHeight+l.Spacing),
		})
	}
	return placements
}

func fit(extent, margin, spacing, size float64) int {
	n := math.Floor((extent - 2*margin + spacing) / (size + spacing))
	return max(int(n), 0)
}
