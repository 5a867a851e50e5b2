package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
)

// settingsService handles the settings key-value store. Upserts are
// serialized by a mutex: sqlite would not corrupt on concurrent writes, but
// last-write-wins needs an ordering once callers run on real goroutines.
type settingsService struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// Get returns the setting for key.
func (s *settingsService) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSettingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &setting, nil
}

// Set upserts the setting: insert when absent, replace value and refresh
// updatedAt on conflict. Setting the same key twice leaves exactly one row.
func (s *settingsService) Set(key, value string) error {
	if key == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "setting key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	setting := models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updatedAt": time.Now()}),
	}).Create(&setting).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// All returns every setting row.
func (s *settingsService) All() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}
