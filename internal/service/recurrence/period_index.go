package recurrence

import (
	"fmt"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

// PeriodIndex resolves logical period numbers to bell-schedule windows.
type PeriodIndex struct {
	byNumber map[int]domain.Period
}

// NewPeriodIndex rejects tables where two periods share a number.
// Periods whose start is not before their end are left out of the index.
func NewPeriodIndex(periods []domain.Period) (*PeriodIndex, error) {
	byNumber := make(map[int]domain.Period, len(periods))
	for _, p := range periods {
		if existing, ok := byNumber[p.Number()]; ok {
			return nil, fmt.Errorf("%w: %d used by periods %d and %d",
				domain.ErrDuplicatePeriodNumber, p.Number(), existing.ID, p.ID)
		}
		byNumber[p.Number()] = p
	}

	for n, p := range byNumber {
		if !p.Valid() {
			delete(byNumber, n)
		}
	}

	return &PeriodIndex{byNumber: byNumber}, nil
}

func (x *PeriodIndex) Lookup(number int) (domain.Period, bool) {
	p, ok := x.byNumber[number]
	return p, ok
}

func (x *PeriodIndex) Len() int {
	return len(x.byNumber)
}

// Windows returns one window per period number in [start, end].
func (x *PeriodIndex) Windows(start, end int) ([]domain.PeriodWindow, error) {
	if start > end {
		return nil, fmt.Errorf("%w: empty range %d-%d", domain.ErrPeriodNotFound, start, end)
	}
	// Numbers are distinct, so a range longer than the table has a gap.
	if span := end - start; span < 0 || span >= len(x.byNumber) {
		return nil, fmt.Errorf("%w: range %d-%d exceeds %d periods", domain.ErrPeriodNotFound, start, end, len(x.byNumber))
	}

	windows := make([]domain.PeriodWindow, 0, end-start+1)
	for n := start; n <= end; n++ {
		p, ok := x.byNumber[n]
		if !ok {
			return nil, fmt.Errorf("%w: %d", domain.ErrPeriodNotFound, n)
		}
		windows = append(windows, domain.PeriodWindow{
			Number: n,
			Start:  p.Start,
			End:    p.End,
		})
	}
	return windows, nil
}
