package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to Postgres and verifies the connection with a ping.
func Open(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := opts.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	return db, nil
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ListTimetables(ctx context.Context) ([]domain.Timetable, error) {
	var rows []timetableModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}

	timetables := make([]domain.Timetable, 0, len(rows))
	for _, row := range rows {
		timetables = append(timetables, row.toDomain())
	}
	return timetables, nil
}

func (s *Store) CreateTimetable(ctx context.Context, timetable *domain.Timetable) error {
	row := timetableModel{
		Name:     timetable.Name,
		Semester: timetable.Semester,
		ClassID:  timetable.ClassID,
		Note:     timetable.Note,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	timetable.ID = row.ID
	timetable.CreatedAt = row.CreatedAt
	return nil
}

func (s *Store) ListSlotsForTimetable(ctx context.Context, timetableID int64) ([]domain.CourseSlot, error) {
	var rows []courseSlotModel
	err := s.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = course_slots.course_id").
		Where("courses.timetable_id = ?", timetableID).
		Order("course_slots.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list slots for timetable %d: %w", timetableID, err)
	}

	slots := make([]domain.CourseSlot, 0, len(rows))
	for _, row := range rows {
		slot, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *Store) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	var rows []periodModel
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	periods := make([]domain.Period, 0, len(rows))
	for _, row := range rows {
		period, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}

func (s *Store) ListCourses(ctx context.Context, timetableID int64) ([]domain.Course, error) {
	var rows []courseModel
	err := s.db.WithContext(ctx).
		Where("timetable_id = ?", timetableID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list courses for timetable %d: %w", timetableID, err)
	}

	courses := make([]domain.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toDomain())
	}
	return courses, nil
}

func (s *Store) ListAdjustments(ctx context.Context, timetableID int64) ([]domain.Adjustment, error) {
	var rows []adjustmentModel
	err := s.db.WithContext(ctx).
		Joins("JOIN course_slots ON course_slots.id = adjustments.slot_id").
		Joins("JOIN courses ON courses.id = course_slots.course_id").
		Where("courses.timetable_id = ?", timetableID).
		Order("adjustments.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list adjustments for timetable %d: %w", timetableID, err)
	}

	adjustments := make([]domain.Adjustment, 0, len(rows))
	for _, row := range rows {
		adjustment, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adjustment)
	}
	return adjustments, nil
}

func (s *Store) AddAdjustment(ctx context.Context, adjustment *domain.Adjustment) error {
	if !adjustment.Valid() {
		return fmt.Errorf("%w: adjustment for slot %d", ErrInvalidRow, adjustment.SlotID)
	}
	row := adjustmentFromDomain(*adjustment)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	adjustment.ID = row.ID
	return nil
}

func (s *Store) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var rows []locationModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	locations := make([]domain.Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, domain.Location{
			ID:        row.ID,
			Campus:    row.Campus,
			Building:  row.Building,
			Classroom: row.Classroom,
		})
	}
	return locations, nil
}

func (s *Store) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	var rows []teacherModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	teachers := make([]domain.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, domain.Teacher{ID: row.ID, Name: row.Name})
	}
	return teachers, nil
}

func (s *Store) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var row settingsModel
	err := s.db.WithContext(ctx).First(&row, settingsRow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	settings := row.toDomain()
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	row := settingsFromDomain(settings)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *Store) FindCourseByName(ctx context.Context, timetableID int64, name string) (*domain.Course, error) {
	var row courseModel
	err := s.db.WithContext(ctx).
		Where("timetable_id = ? AND name = ?", timetableID, strings.TrimSpace(name)).
		Order("id ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course %q: %w", name, err)
	}

	course := row.toDomain()
	return &course, nil
}

func (s *Store) CreateCourse(ctx context.Context, course *domain.Course) error {
	row := courseFromDomain(course)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create course %q: %w", course.Name, err)
	}
	course.ID = row.ID
	course.Type = row.Type
	return nil
}

func (s *Store) AddSlots(ctx context.Context, courseID int64, slots []domain.CourseSlot) error {
	if len(slots) == 0 {
		return nil
	}

	rows := make([]courseSlotModel, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, slotFromDomain(courseID, slot))
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("add slots to course %d: %w", courseID, err)
	}
	return nil
}

func (s *Store) EnsureTeacher(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}

	row := teacherModel{Name: name}
	err := s.db.WithContext(ctx).
		Where(teacherModel{Name: name}).
		FirstOrCreate(&row).Error
	if err != nil {
		return 0, fmt.Errorf("ensure teacher %q: %w", name, err)
	}
	return row.ID, nil
}

func (s *Store) EnsureLocation(ctx context.Context, classroom string) (int64, error) {
	classroom = strings.TrimSpace(classroom)
	if classroom == "" {
		return 0, nil
	}

	row := locationModel{Classroom: classroom}
	err := s.db.WithContext(ctx).
		Where("classroom = ? AND campus = '' AND building = ''", classroom).
		Attrs(locationModel{Classroom: classroom}).
		FirstOrCreate(&row).Error
	if err != nil {
		return 0, fmt.Errorf("ensure location %q: %w", classroom, err)
	}
	return row.ID, nil
}

// InitializeDefaultPeriods seeds the default bell schedule when no period exists.
func (s *Store) InitializeDefaultPeriods(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&periodModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count periods: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := domain.DefaultPeriods()
	rows := make([]periodModel, 0, len(defaults))
	for _, p := range defaults {
		rows = append(rows, periodFromDomain(p))
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed default periods: %w", err)
	}

	slog.InfoContext(ctx, "default periods initialized",
		slog.Int("period_count", len(rows)),
	)
	return nil
}

var (
	_ domain.TimetableReader = (*Store)(nil)
	_ domain.TimetableWriter = (*Store)(nil)
)
