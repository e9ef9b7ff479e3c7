package domain

import (
	"strings"
	"time"
)

type Course struct {
	ID          int64
	TimetableID int64
	Name        string
	Type        string
	Credit      float64
	ExamTime    string
	Note        string
}

type Timetable struct {
	ID        int64
	Name      string
	Semester  string
	ClassID   string
	CreatedAt time.Time
	Note      string
}

type Teacher struct {
	ID   int64
	Name string
}

type Location struct {
	ID        int64
	Campus    string
	Building  string
	Classroom string
}

// String joins the non-empty parts of the location with spaces.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Campus, l.Building, l.Classroom} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
