package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/timetable"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/weekcal"
)

var ErrInvalidImport = errors.New("invalid schedule import file")

const (
	settingsLine    = 2
	courseNamesLine = 3
	slotsLine       = 4

	maxImportSize = 4 << 20
)

const (
	importedCourseType = "required"
	defaultSlotStep    = 1
)

type wakeUpSettings struct {
	StartDate *string `json:"startDate"`
	MaxWeek   *int    `json:"maxWeek"`
	ShowSat   *bool   `json:"showSat"`
	ShowSun   *bool   `json:"showSun"`
}

type wakeUpCourseName struct {
	ID         int    `json:"id"`
	CourseName string `json:"courseName"`
}

type wakeUpSlot struct {
	ID        int    `json:"id"`
	Day       int    `json:"day"`
	StartNode int    `json:"startNode"`
	Step      *int   `json:"step"`
	StartWeek *int   `json:"startWeek"`
	EndWeek   *int   `json:"endWeek"`
	Teacher   string `json:"teacher"`
	Room      string `json:"room"`
}

// ImportedCourse is one course of an import together with every slot that
// shares its name.
type ImportedCourse struct {
	Course domain.Course
	Slots  []timetable.SlotInput
}

type Parsed struct {
	Settings domain.Settings
	Courses  []ImportedCourse
}

// ParseWakeUp reads a WakeUp schedule export. Missing settings fall back to
// defaults and an unreadable start date falls back to one year before today.
func ParseWakeUp(r io.Reader, today civil.Date) (*Parsed, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) <= slotsLine {
		return nil, fmt.Errorf("%w: expected at least %d lines, got %d", ErrInvalidImport, slotsLine+1, len(lines))
	}

	var rawSettings wakeUpSettings
	if err := json.Unmarshal([]byte(lines[settingsLine]), &rawSettings); err != nil {
		return nil, fmt.Errorf("%w: settings: %w", ErrInvalidImport, err)
	}

	var names []wakeUpCourseName
	if err := json.Unmarshal([]byte(lines[courseNamesLine]), &names); err != nil {
		return nil, fmt.Errorf("%w: course names: %w", ErrInvalidImport, err)
	}

	var slots []wakeUpSlot
	if err := json.Unmarshal([]byte(lines[slotsLine]), &slots); err != nil {
		return nil, fmt.Errorf("%w: slots: %w", ErrInvalidImport, err)
	}

	return &Parsed{
		Settings: convertSettings(rawSettings, today),
		Courses:  groupCourses(names, slots),
	}, nil
}

func convertSettings(raw wakeUpSettings, today civil.Date) domain.Settings {
	settings := domain.DefaultSettings(today)

	fallback := civil.DateOf(today.In(time.UTC).AddDate(-1, 0, 0))
	settings.SemesterStartDate = fallback
	if raw.StartDate != nil {
		settings.SemesterStartDate = weekcal.ParseDate(*raw.StartDate, fallback)
	}
	if raw.MaxWeek != nil && *raw.MaxWeek > 0 {
		settings.TotalWeeks = min(*raw.MaxWeek, domain.MaxWeekNumber)
	}
	settings.ShowWeekends = (raw.ShowSat != nil && *raw.ShowSat) || (raw.ShowSun != nil && *raw.ShowSun)

	return settings
}

// groupCourses resolves slot course names and folds slots of equally named
// courses together, keeping first-seen order.
func groupCourses(names []wakeUpCourseName, slots []wakeUpSlot) []ImportedCourse {
	nameByID := make(map[int]string, len(names))
	for _, n := range names {
		nameByID[n.ID] = strings.TrimSpace(n.CourseName)
	}

	courses := make([]ImportedCourse, 0, len(names))
	index := make(map[string]int)
	for _, raw := range slots {
		name := nameByID[raw.ID]
		if name == "" {
			continue
		}

		i, ok := index[name]
		if !ok {
			i = len(courses)
			index[name] = i
			courses = append(courses, ImportedCourse{
				Course: domain.Course{Name: name, Type: importedCourseType},
			})
		}
		courses[i].Slots = append(courses[i].Slots, convertSlot(raw))
	}

	return courses
}

func convertSlot(raw wakeUpSlot) timetable.SlotInput {
	// Out of range nodes and steps leave an invalid slot that the import skips.
	step := defaultSlotStep
	if raw.Step != nil && *raw.Step > 0 {
		step = min(*raw.Step, domain.MaxPeriodNumber+1)
	}
	startNode := min(raw.StartNode, domain.MaxPeriodNumber+1)
	startWeek, endWeek := 1, 1
	if raw.StartWeek != nil {
		startWeek = *raw.StartWeek
	}
	if raw.EndWeek != nil {
		endWeek = *raw.EndWeek
	}

	return timetable.SlotInput{
		Slot: domain.CourseSlot{
			Weeks:       domain.WeekRange(startWeek, endWeek),
			DayOfWeek:   raw.Day,
			StartPeriod: startNode,
			EndPeriod:   startNode + step - 1,
		},
		Teacher:   raw.Teacher,
		Classroom: raw.Room,
	}
}
