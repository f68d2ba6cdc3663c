package domain

const (
	// TraceType is the only trace type the engine resolves.
	TraceType = "indicator"

	// DefaultNumberFontSize is the number font size used when the caller
	// leaves it unset. Delta and title sizes derive from it.
	DefaultNumberFontSize = 80.0

	// ValueThickness is the gauge bar thickness relative to the gauge.
	// Bullet gauges use half of it.
	ValueThickness = 0.5

	// RelativeDeltaFormat is the delta value format when delta.relative is set.
	RelativeDeltaFormat = "2%"

	// RangeFactor scales value into the default upper bound of the shared range.
	RangeFactor = 1.5
)

// Modes accepted in the mode flaglist.
const (
	ModeNumber = "number"
	ModeDelta  = "delta"
	ModeGauge  = "gauge"
)

// Gauge shapes.
const (
	ShapeAngular = "angular"
	ShapeBullet  = "bullet"
)
