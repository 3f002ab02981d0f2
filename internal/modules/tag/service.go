package tag

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
)

var (
	errTagNotFound   = errors.New("tag not found")
	errDuplicateName = errors.New("tag name already exists")
)

type tagWithCount struct {
	models.Tag
	ArticleCount int64 `json:"article_count"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns every tag with the number of articles carrying it.
func (s *Service) List() ([]tagWithCount, error) {
	var list []tagWithCount
	err := s.db.Model(&models.Tag{}).
		Select("tags.*, (SELECT COUNT(*) FROM article_tags WHERE article_tags.tag_id = tags.id) AS article_count").
		Order("tags.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Create(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateName
	}

	t := models.Tag{Name: name}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) Update(id uint, name string) (*models.Tag, error) {
	var t models.Tag
	if err := s.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errTagNotFound
		}
		return nil, err
	}

	name = strings.TrimSpace(name)
	var count int64
	if err := s.db.Model(&models.Tag{}).
		Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateName
	}

	if err := s.db.Model(&t).UpdateColumn("name", name).Error; err != nil {
		return nil, err
	}
	t.Name = name
	return &t, nil
}

// Delete removes a tag and detaches it from every article.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Tag
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTagNotFound
			}
			return err
		}
		if err := tx.Exec("DELETE FROM article_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
}
