package models

import (
	"time"

	"github.com/hetpatel672/BudgetWise/internal/uuid"

	"gorm.io/gorm"
)

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether the type is one of the recognized category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category represents a transaction category. The hierarchy is a single
// level deep: a category may have a parent, but a parent may not.
type Category struct {
	ID        string       `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Type      CategoryType `gorm:"not null" json:"type"`
	Color     string       `gorm:"default:#6366f1" json:"color"`
	Icon      string       `gorm:"default:folder" json:"icon"`
	ParentID  *string      `gorm:"column:parentId" json:"parent_id,omitempty"`
	IsActive  bool         `gorm:"column:isActive;default:true" json:"is_active"`
	CreatedAt time.Time    `gorm:"column:createdAt" json:"created_at"`
	UpdatedAt time.Time    `gorm:"column:updatedAt" json:"updated_at"`
}

// TableName maps the model onto the legacy table.
func (Category) TableName() string { return "categories" }

// BeforeCreate generates a UUIDv7 for new records without an id.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	return nil
}
