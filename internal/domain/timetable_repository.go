package domain

import "context"

//go:generate mockgen -source=timetable_repository.go -destination=timetable_repository_mock.go -package=domain

type TimetableReader interface {
	ListTimetables(ctx context.Context) ([]Timetable, error)
	ListSlotsForTimetable(ctx context.Context, timetableID int64) ([]CourseSlot, error)
	ListPeriods(ctx context.Context) ([]Period, error)
	ListCourses(ctx context.Context, timetableID int64) ([]Course, error)
	ListAdjustments(ctx context.Context, timetableID int64) ([]Adjustment, error)
	ListLocations(ctx context.Context) ([]Location, error)
	ListTeachers(ctx context.Context) ([]Teacher, error)
	GetSettings(ctx context.Context) (*Settings, error)
}

type TimetableWriter interface {
	FindCourseByName(ctx context.Context, timetableID int64, name string) (*Course, error)
	CreateCourse(ctx context.Context, course *Course) error
	AddSlots(ctx context.Context, courseID int64, slots []CourseSlot) error
	EnsureTeacher(ctx context.Context, name string) (int64, error)
	EnsureLocation(ctx context.Context, classroom string) (int64, error)
	SaveSettings(ctx context.Context, settings Settings) error
}
