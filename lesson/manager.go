package lesson

import (
	"context"
	"errors"
	"fmt"

	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ManagerOptions contains the configuration for lesson Manager
type ManagerOptions struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// Manager handles curriculum persistence and access checks
type Manager struct {
	ManagerOptions
}

// NewManager returns a new Manager for lessons. The initial curriculum is
// seeded when the table is empty.
func NewManager(option ManagerOptions) (*Manager, error) {
	if option.DB == nil {
		return nil, fmt.Errorf("nil DB is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if err := option.DB.AutoMigrate(&Lesson{}); err != nil {
		return nil, extErrors.Wrap(err, "Cannot initialize lesson.Manager")
	}
	m := &Manager{
		ManagerOptions: option,
	}
	if err := m.seed(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) seed() error {
	var count int64
	if err := m.DB.Model(&Lesson{}).Count(&count).Error; err != nil {
		return extErrors.Wrap(err, "Cannot count lessons")
	}
	if count > 0 {
		return nil
	}
	curriculum := initialCurriculum()
	if err := m.DB.Create(&curriculum).Error; err != nil {
		return extErrors.Wrap(err, "Cannot seed curriculum")
	}
	m.Logger.Info("Soul Food curriculum initialized",
		zap.Int("Lessons", len(curriculum)),
	)
	return nil
}

// ListOption filters the lesson listing
type ListOption struct {
	Series  string
	Edition string
}

// List returns lessons ordered by series then lesson number. Edition
// filtering happens in memory since edition access is a JSON column.
func (m *Manager) List(ctx context.Context, opt ListOption) ([]Lesson, error) {
	baseQuery := m.DB.WithContext(ctx).Order("series").Order("lesson_number")
	if len(opt.Series) > 0 {
		baseQuery = baseQuery.Where("series = ?", opt.Series)
	}

	lessons := make([]Lesson, 0)
	if err := baseQuery.Find(&lessons).Error; err != nil {
		m.Logger.Error("Database returned error",
			zap.Error(err),
		)
		return nil, extErrors.Wrap(err, "Cannot list lessons")
	}

	if len(opt.Edition) == 0 {
		return lessons, nil
	}
	filtered := make([]Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.EditionAccess.Contains(opt.Edition) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

// GetByID returns a single lesson, or nil if not found
func (m *Manager) GetByID(ctx context.Context, id string) (*Lesson, error) {
	var lesson Lesson
	result := m.DB.WithContext(ctx).Where("id = ?", id).First(&lesson)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		m.Logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return nil, extErrors.Wrap(result.Error, "Cannot get lesson by ID")
	}
	return &lesson, nil
}
