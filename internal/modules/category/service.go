package category

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
)

var (
	errCategoryNotFound = errors.New("category not found")
	errDuplicateName    = errors.New("category name already exists")
	errInvalidField     = errors.New("invalid category field")
)

// categoryWithCount carries the article count alongside the category columns.
type categoryWithCount struct {
	models.Category
	ArticleCount int64 `json:"article_count"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns every category with the number of articles filed under it.
func (s *Service) List() ([]categoryWithCount, error) {
	var list []categoryWithCount
	err := s.db.Model(&models.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM articles WHERE articles.cate_id = categories.id) AS article_count").
		Order("categories.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns one category with its article count.
func (s *Service) Get(id uint) (*categoryWithCount, error) {
	var row categoryWithCount
	err := s.db.Model(&models.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM articles WHERE articles.cate_id = categories.id) AS article_count").
		Where("categories.id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a category. Names are unique.
func (s *Service) Create(name, alias string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateName
	}

	cat := models.Category{Name: name, Alias: strings.TrimSpace(alias)}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update applies a merge patch: only keys present in the body change, so a
// payload that omits alias leaves the stored alias alone. A new name must
// not collide with another category.
func (s *Service) Update(id uint, patch map[string]json.RawMessage) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}

	updates := map[string]any{}
	if raw, ok := patch["name"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidField
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, errInvalidField
		}
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("name = ? AND id <> ?", v, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errDuplicateName
		}
		updates["name"] = v
	}
	if raw, ok := patch["alias"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidField
		}
		updates["alias"] = strings.TrimSpace(v)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&cat).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

// Delete removes a category. Articles filed under it stay but lose the link.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCategoryNotFound
			}
			return err
		}
		if err := tx.Model(&models.Article{}).Where("cate_id = ?", id).
			UpdateColumn("cate_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
}
