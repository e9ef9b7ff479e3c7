package domain

import (
	"strconv"

	"cloud.google.com/go/civil"
)

type Period struct {
	ID         int64
	Name       string
	Start      civil.Time
	End        civil.Time
	PeriodType string
	SortOrder  int
	Note       string
}

func (p Period) Valid() bool {
	return CompareClock(p.Start, p.End) < 0
}

// Number is the 1-based logical period number slots refer to.
func (p Period) Number() int {
	return p.SortOrder
}

var defaultPeriodTimes = [][2]civil.Time{
	{{Hour: 8}, {Hour: 8, Minute: 45}},
	{{Hour: 8, Minute: 55}, {Hour: 9, Minute: 40}},
	{{Hour: 10}, {Hour: 10, Minute: 45}},
	{{Hour: 10, Minute: 55}, {Hour: 11, Minute: 40}},
	{{Hour: 14}, {Hour: 14, Minute: 45}},
	{{Hour: 14, Minute: 55}, {Hour: 15, Minute: 40}},
	{{Hour: 16}, {Hour: 16, Minute: 45}},
	{{Hour: 16, Minute: 55}, {Hour: 17, Minute: 40}},
	{{Hour: 19}, {Hour: 19, Minute: 45}},
}

// DefaultPeriods returns the nine-period bell schedule used for a fresh table.
func DefaultPeriods() []Period {
	periods := make([]Period, 0, len(defaultPeriodTimes))
	for i, window := range defaultPeriodTimes {
		periodType := "morning"
		switch {
		case i >= 8:
			periodType = "evening"
		case i >= 4:
			periodType = "afternoon"
		}
		periods = append(periods, Period{
			Name:       periodName(i + 1),
			Start:      window[0],
			End:        window[1],
			PeriodType: periodType,
			SortOrder:  i + 1,
		})
	}
	return periods
}

func periodName(n int) string {
	return "Period " + strconv.Itoa(n)
}
