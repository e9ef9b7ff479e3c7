package dnd

import (
	"testing"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.Status
		enabled    bool
		permission bool
		want       domain.InterruptionFilter
	}{
		{name: "in progress", status: domain.StatusInProgress, enabled: true, permission: true, want: domain.FilterPriorityOnly},
		{name: "ended", status: domain.StatusEnded, enabled: true, permission: true, want: domain.FilterAll},
		{name: "between", status: domain.StatusBetween, enabled: true, permission: true, want: domain.FilterNoChange},
		{name: "upcoming", status: domain.StatusUpcoming, enabled: true, permission: true, want: domain.FilterNoChange},
		{name: "unknown", status: domain.StatusUnknown, enabled: true, permission: true, want: domain.FilterNoChange},
		{name: "feature disabled", status: domain.StatusInProgress, enabled: false, permission: true, want: domain.FilterNoChange},
		{name: "permission missing", status: domain.StatusInProgress, enabled: true, permission: false, want: domain.FilterNoChange},
		{name: "permission missing on end", status: domain.StatusEnded, enabled: true, permission: false, want: domain.FilterNoChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.status, tt.enabled, tt.permission); got != tt.want {
				t.Errorf("Decide: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransitioned(t *testing.T) {
	if Transitioned(domain.StatusInProgress, domain.StatusInProgress) {
		t.Error("same status must not count as a transition")
	}
	if !Transitioned(domain.StatusBetween, domain.StatusInProgress) {
		t.Error("status change must count as a transition")
	}
}
