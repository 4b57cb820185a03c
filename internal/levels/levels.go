// Package levels defines the threshold policy for every supply category and
// derives the status band ("critical", "low", "normal") for a quantity.
//
// The thresholds are a fixed configuration table, one row per category. They
// are intentionally not persisted: the enriched resource views recompute the
// status on every read, so a policy change takes effect immediately without a
// data migration.
package levels

import "errors"

// Supply categories tracked by the station. The set is closed; anything else
// is rejected at the API boundary.
const (
	CategoryOxygen     = "oxygen"
	CategoryWater      = "water"
	CategoryFood       = "food"
	CategorySpareParts = "spare_parts"
)

// Status bands derived from a quantity versus the category thresholds.
const (
	StatusCritical = "critical"
	StatusLow      = "low"
	StatusNormal   = "normal"
)

// ErrUnknownCategory is returned by ForCategory when the category is outside
// the fixed enumeration.
var ErrUnknownCategory = errors.New("unknown resource category")

// Levels holds the threshold configuration for one category.
type Levels struct {
	Minimum  float64 `json:"minimumLevel"`
	Critical float64 `json:"criticalLevel"`
	Maximum  float64 `json:"maximumLevel"`
	Unit     string  `json:"unit"`
}

// table is the reference deployment policy. Note the oxygen row: its critical
// threshold sits above its minimum, so the critical band swallows the low band
// entirely. DeriveStatus checks critical first, which makes that the winning
// interpretation rather than an accident.
var table = map[string]Levels{
	CategoryOxygen:     {Minimum: 3000, Critical: 5000, Maximum: 20000, Unit: "liters"},
	CategoryWater:      {Minimum: 4000, Critical: 2000, Maximum: 15000, Unit: "liters"},
	CategoryFood:       {Minimum: 300, Critical: 150, Maximum: 1000, Unit: "kg"},
	CategorySpareParts: {Minimum: 50, Critical: 20, Maximum: 500, Unit: "units"},
}

// Categories returns the closed category enumeration in a stable order.
func Categories() []string {
	return []string{CategoryOxygen, CategoryWater, CategoryFood, CategorySpareParts}
}

// ValidCategory reports whether category belongs to the fixed enumeration.
func ValidCategory(category string) bool {
	_, ok := table[category]
	return ok
}

// ForCategory returns the threshold row for a category, or ErrUnknownCategory
// when the category is not part of the fixed enumeration.
func ForCategory(category string) (Levels, error) {
	l, ok := table[category]
	if !ok {
		return Levels{}, ErrUnknownCategory
	}
	return l, nil
}

// DeriveStatus maps a quantity onto the three status bands. The critical check
// runs strictly first, so when a category is configured with critical above
// minimum the critical band wins at the overlap.
func DeriveStatus(quantity float64, l Levels) string {
	switch {
	case quantity <= l.Critical:
		return StatusCritical
	case quantity <= l.Minimum:
		return StatusLow
	default:
		return StatusNormal
	}
}
