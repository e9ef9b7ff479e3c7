package domain

import (
	"cloud.google.com/go/civil"
)

// Adjustment moves the occurrence of a slot on Date to TargetDate with explicit times.
type Adjustment struct {
	ID               int64
	SlotID           int64
	Date             civil.Date
	TargetDate       civil.Date
	Start            civil.Time
	End              civil.Time
	OriginalPeriodID *int64
	AdjustType       string
	Note             string
}

func (a Adjustment) Valid() bool {
	return a.Date.IsValid() && a.TargetDate.IsValid() && CompareClock(a.Start, a.End) < 0
}
