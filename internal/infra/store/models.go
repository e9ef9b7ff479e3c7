package store

import (
	"time"
)

type timetableModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Semester  string    `gorm:"type:varchar(50)"`
	ClassID   string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	Note      string    `gorm:"type:text"`
}

func (timetableModel) TableName() string { return "timetables" }

type courseModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	TimetableID int64   `gorm:"not null;index:idx_courses_timetable_name,priority:1"`
	Name        string  `gorm:"type:varchar(100);not null;index:idx_courses_timetable_name,priority:2"`
	Type        string  `gorm:"type:varchar(20);not null;default:'required'"`
	Credit      float64 `gorm:"not null;default:0"`
	ExamTime    string  `gorm:"type:varchar(50)"`
	Note        string  `gorm:"type:text"`
}

func (courseModel) TableName() string { return "courses" }

type courseSlotModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CourseID    int64  `gorm:"not null;index"`
	Weeks       string `gorm:"type:text;not null"`
	DayOfWeek   int    `gorm:"type:smallint;not null"`
	StartPeriod int    `gorm:"type:smallint;not null"`
	EndPeriod   int    `gorm:"type:smallint;not null"`
	LocationID  int64  `gorm:"not null;default:0"`
	TeacherID   int64  `gorm:"not null;default:0"`
}

func (courseSlotModel) TableName() string { return "course_slots" }

type periodModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"type:varchar(50);not null"`
	StartTime  string `gorm:"type:varchar(8);not null"`
	EndTime    string `gorm:"type:varchar(8);not null"`
	PeriodType string `gorm:"type:varchar(20);not null"`
	SortOrder  int    `gorm:"not null;uniqueIndex"`
	Note       string `gorm:"type:text"`
}

func (periodModel) TableName() string { return "periods" }

type adjustmentModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	SlotID           int64     `gorm:"not null;index"`
	Date             time.Time `gorm:"type:date;not null"`
	TargetDate       time.Time `gorm:"type:date;not null"`
	StartTime        string    `gorm:"type:varchar(8);not null"`
	EndTime          string    `gorm:"type:varchar(8);not null"`
	OriginalPeriodID *int64
	AdjustType       string `gorm:"type:varchar(20);not null;default:'reschedule'"`
	Note             string `gorm:"type:text"`
}

func (adjustmentModel) TableName() string { return "adjustments" }

type locationModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Campus    string `gorm:"type:varchar(100)"`
	Building  string `gorm:"type:varchar(100)"`
	Classroom string `gorm:"type:varchar(100);not null;index"`
}

func (locationModel) TableName() string { return "locations" }

type teacherModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (teacherModel) TableName() string { return "teachers" }

// settingsRow is the id of the single settings row.
const settingsRow = 1

type settingsModel struct {
	ID                  int64     `gorm:"primaryKey"`
	SemesterStartDate   time.Time `gorm:"type:date;not null"`
	TotalWeeks          int       `gorm:"not null"`
	NumberOfPeriods     int       `gorm:"not null"`
	ShowWeekends        bool      `gorm:"not null"`
	DoNotDisturbEnabled bool      `gorm:"not null"`
	NotificationEnabled bool      `gorm:"not null"`
	Theme               string    `gorm:"type:varchar(20);not null"`
}

func (settingsModel) TableName() string { return "settings" }

func allModels() []any {
	return []any{
		&timetableModel{},
		&courseModel{},
		&courseSlotModel{},
		&periodModel{},
		&adjustmentModel{},
		&locationModel{},
		&teacherModel{},
		&settingsModel{},
	}
}
