package database

import (
	"gorm.io/gorm"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
)

// defaultCategories are created on first run. Insert-if-absent keyed on
// name, so re-running the seed never duplicates rows and never resurrects
// a category the user renamed or deleted by id.
var defaultCategories = []models.Category{
	{Name: "Salary", Type: models.CategoryTypeIncome, Icon: "cash", Color: "#22c55e"},
	{Name: "Food & Dining", Type: models.CategoryTypeExpense, Icon: "restaurant", Color: "#f59e0b"},
	{Name: "Transportation", Type: models.CategoryTypeExpense, Icon: "car", Color: "#3b82f6"},
	{Name: "Shopping", Type: models.CategoryTypeExpense, Icon: "bag", Color: "#ec4899"},
	{Name: "Entertainment", Type: models.CategoryTypeExpense, Icon: "film", Color: "#8b5cf6"},
}

// defaultSettings are created on first run if the key is absent.
var defaultSettings = map[string]string{
	models.SettingCurrency:      "USD",
	models.SettingTheme:         "system",
	models.SettingNotifications: "true",
	models.SettingFirstLaunch:   "true",
}

// SeedDefaults inserts the default categories and settings when absent.
// It is idempotent: running it any number of times leaves exactly one row
// per default.
func SeedDefaults(db *gorm.DB) error {
	for _, c := range defaultCategories {
		category := c
		category.IsActive = true

		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	for key, value := range defaultSettings {
		var count int64
		if err := db.Model(&models.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return nil
}
