package domain

// Status classifies an occurrence against the current time of day.
type Status string

const (
	StatusUpcoming   Status = "upcoming"
	StatusInProgress Status = "in_progress"
	StatusBetween    Status = "between"
	StatusEnded      Status = "ended"
	StatusUnknown    Status = "unknown"
)

func (s Status) String() string {
	return string(s)
}

// InSession reports whether a progress chain should keep ticking.
func (s Status) InSession() bool {
	return s == StatusInProgress || s == StatusBetween
}

type Progress struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Evaluation is the status engine's verdict for one occurrence.
type Evaluation struct {
	Status           Status   `json:"status"`
	CurrentPeriod    int      `json:"current_period"`
	RemainingMinutes int      `json:"remaining_minutes"`
	Progress         Progress `json:"progress"`
	Message          string   `json:"message"`
}
