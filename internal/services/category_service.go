package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// Create creates a new category. The hierarchy is one level deep: the
// parent, when given, must exist and must itself be a root category.
func (s *categoryService) Create(name string, categoryType models.CategoryType, color, icon string, parentID *string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}

	if parentID != nil {
		if err := s.checkParent(*parentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:     name,
		Type:     categoryType,
		Color:    color,
		Icon:     icon,
		ParentID: parentID,
		IsActive: true,
	}
	if category.Color == "" {
		category.Color = "#6366f1"
	}
	if category.Icon == "" {
		category.Icon = "folder"
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// checkParent verifies the parent exists and is a root category.
func (s *categoryService) checkParent(parentID string) error {
	var parent models.Category
	if err := s.db.Where("id = ?", parentID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if parent.ParentID != nil {
		return apperrors.ErrCategoryDepth
	}
	return nil
}

// List returns a page of categories, optionally filtered by type.
func (s *categoryService) List(page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{})
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Limit, page.Offset, totalItems)
	return &result, nil
}

// GetByID returns a category by id.
func (s *categoryService) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// Update updates an existing category's fields.
func (s *categoryService) Update(id string, name, color, icon string, parentID *string, isActive *bool) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if *parentID == id {
			return nil, apperrors.ErrSelfParentCategory
		}
		if err := s.checkParent(*parentID); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if parentID != nil {
		updates["parentId"] = *parentID
	}
	if isActive != nil {
		updates["isActive"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// Delete removes a category. Deletion is refused while transactions still
// reference the category by name, and while child categories point at it.
func (s *categoryService) Delete(id string) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category = ?", category.Name).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parentId = ?", category.ID).Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if childCount > 0 {
		return apperrors.ErrCategoryDepth
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
