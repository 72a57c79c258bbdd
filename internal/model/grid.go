package model

import (
	"encoding/json"
	"strconv"
)

// HoursPerDay is the fixed width of every pivot grid.
const HoursPerDay = 24

// Cell is a pivot grid cell. Valid is false for buckets with zero
// contributing records; a missing cell is never the same as a 0.0 cell.
type Cell struct {
	Valid bool
	Value float64
}

// MarshalJSON renders missing cells as null so consumers cannot confuse
// them with a legitimate zero delay.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts either null or a number.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Cell{}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*c = Cell{Valid: true, Value: v}
	return nil
}

// PivotGrid is a row-labeled, hour-columned grid of mean delay minutes.
// Rows follow the granularity-specific fixed ordering; columns are always
// hours 0..23. Min and Max cover present cells only and are meaningful when
// PresentCells > 0.
type PivotGrid struct {
	Granularity  Granularity `json:"granularity"`
	RowLabels    []string    `json:"row_labels"`
	Hours        []int       `json:"hours"`
	Cells        [][]Cell    `json:"cells"`
	Min          float64     `json:"min"`
	Max          float64     `json:"max"`
	PresentCells int         `json:"present_cells"`
	RecordCount  int         `json:"record_count"`
}

// Cell returns the cell at (row, hour). Out-of-range lookups come back
// as missing.
func (g *PivotGrid) Cell(row, hour int) Cell {
	if row < 0 || row >= len(g.Cells) || hour < 0 || hour >= HoursPerDay {
		return Cell{}
	}
	return g.Cells[row][hour]
}
