package models

// ChartMetadata holds the plain attributes of a size chart.
type ChartMetadata struct {
	// Name is the chart display name.
	Name string `json:"name"`
	// Market is the target market (e.g. "EU", "US").
	Market string `json:"market"`
	// Unit is the measurement unit (e.g. "cm", "in").
	Unit string `json:"unit"`
}

// ChartData is a full size chart: four tables plus metadata.
type ChartData struct {
	// Measurements is the measurement-point by size matrix.
	Measurements Table `json:"measurements"`
	// GradingRules maps grading rules to increments.
	GradingRules Table `json:"grading_rules"`
	// Tolerance maps measurement points to tolerances.
	Tolerance Table `json:"tolerance"`
	// SizeConversion is the size-system by size matrix.
	SizeConversion Table `json:"size_conversion"`

	ChartMetadata
}

// Table returns the table stored for shape.
func (c ChartData) Table(shape TableShape) Table {
	switch shape {
	case ShapeMeasurements:
		return c.Measurements
	case ShapeGradingRules:
		return c.GradingRules
	case ShapeTolerance:
		return c.Tolerance
	case ShapeSizeConversion:
		return c.SizeConversion
	}
	return Table{}
}

// SetTable stores t under shape. Unknown shapes are ignored.
func (c *ChartData) SetTable(shape TableShape, t Table) {
	switch shape {
	case ShapeMeasurements:
		c.Measurements = t
	case ShapeGradingRules:
		c.GradingRules = t
	case ShapeTolerance:
		c.Tolerance = t
	case ShapeSizeConversion:
		c.SizeConversion = t
	}
}
