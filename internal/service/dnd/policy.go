package dnd

import "github.com/KasumiMercury/primind-timetable-reminder/internal/domain"

// Decide maps a status transition to the interruption filter the device
// should switch to. Without the feature or the permission nothing changes.
func Decide(status domain.Status, featureEnabled, permissionGranted bool) domain.InterruptionFilter {
	if !featureEnabled || !permissionGranted {
		return domain.FilterNoChange
	}

	switch status {
	case domain.StatusInProgress:
		return domain.FilterPriorityOnly
	case domain.StatusEnded:
		return domain.FilterAll
	default:
		return domain.FilterNoChange
	}
}

// Transitioned reports whether moving from prev to next should be acted on.
func Transitioned(prev, next domain.Status) bool {
	return prev != next
}
