package models

import "fmt"

// TableShape identifies one of the four table kinds of a size chart.
type TableShape string

const (
	// ShapeMeasurements is the measurement-point by size matrix.
	ShapeMeasurements TableShape = "measurements"
	// ShapeGradingRules holds one grading increment per rule.
	ShapeGradingRules TableShape = "grading_rules"
	// ShapeTolerance holds one tolerance per measurement point.
	ShapeTolerance TableShape = "tolerance"
	// ShapeSizeConversion is the size-system by size matrix.
	ShapeSizeConversion TableShape = "size_conversion"
)

// ValueColumn is the implicit column of scalar tables.
const ValueColumn = "Value"

// Shapes lists every table shape in chart order.
var Shapes = []TableShape{
	ShapeMeasurements,
	ShapeGradingRules,
	ShapeTolerance,
	ShapeSizeConversion,
}

// ShapeConfig describes how a table shape is stored and displayed.
type ShapeConfig struct {
	// MaxColumns is the column cap (0 means unbounded).
	MaxColumns int
	// IsScalar marks shapes stored as row -> value.
	IsScalar bool
	// RowLabel names the row header (e.g. "Measurement Point").
	RowLabel string
	// ColumnLabel names the column header.
	ColumnLabel string
	// Title is the human-readable table name.
	Title string
}

var shapeConfigs = map[TableShape]ShapeConfig{
	ShapeMeasurements: {
		RowLabel:    "Measurement Point",
		ColumnLabel: "Size",
		Title:       "Measurements",
	},
	ShapeGradingRules: {
		MaxColumns:  1,
		IsScalar:    true,
		RowLabel:    "Grading Rule",
		ColumnLabel: "Size",
		Title:       "Grading Rules",
	},
	ShapeTolerance: {
		MaxColumns:  1,
		IsScalar:    true,
		RowLabel:    "Tolerance Point",
		ColumnLabel: "Size",
		Title:       "Tolerance",
	},
	ShapeSizeConversion: {
		RowLabel:    "Size System",
		ColumnLabel: "Size",
		Title:       "Size Conversion",
	},
}

// ParseTableShape converts a wire name into a TableShape.
func ParseTableShape(s string) (TableShape, error) {
	shape := TableShape(s)
	if _, ok := shapeConfigs[shape]; !ok {
		return "", fmt.Errorf("unknown table shape %q", s)
	}
	return shape, nil
}

// Valid reports whether s is one of the known shapes.
func (s TableShape) Valid() bool {
	_, ok := shapeConfigs[s]
	return ok
}

// Config returns the configuration for s. Unknown shapes get the
// unbounded matrix configuration.
func (s TableShape) Config() ShapeConfig {
	if cfg, ok := shapeConfigs[s]; ok {
		return cfg
	}
	return ShapeConfig{RowLabel: "Row", ColumnLabel: "Column", Title: string(s)}
}

// SortsColumns reports whether display columns go through the size comparator.
func (s TableShape) SortsColumns() bool {
	return !s.Config().IsScalar
}
