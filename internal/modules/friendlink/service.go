package friendlink

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
)

var (
	errLinkNotFound  = errors.New("friend link not found")
	errDuplicateName = errors.New("friend link name already exists")
	errInvalidField  = errors.New("invalid friend link field")
)

// UpsertDTO is shared between create and update.
type UpsertDTO struct {
	Name        string `json:"name"`
	LinkURL     string `json:"link_url"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List() ([]models.FriendLink, error) {
	var list []models.FriendLink
	if err := s.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Create(dto *UpsertDTO) (*models.FriendLink, error) {
	name := strings.TrimSpace(dto.Name)
	var count int64
	if err := s.db.Model(&models.FriendLink{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errDuplicateName
	}

	fl := models.FriendLink{
		Name:        name,
		LinkURL:     strings.TrimSpace(dto.LinkURL),
		LogoURL:     strings.TrimSpace(dto.LogoURL),
		Description: strings.TrimSpace(dto.Description),
	}
	if err := s.db.Create(&fl).Error; err != nil {
		return nil, err
	}
	return &fl, nil
}

// Update applies a merge patch: only keys present in the body change, so a
// payload that omits logo_url or description leaves the stored values alone.
func (s *Service) Update(id uint, patch map[string]json.RawMessage) (*models.FriendLink, error) {
	var fl models.FriendLink
	if err := s.db.First(&fl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errLinkNotFound
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
		if err := s.db.Model(&models.FriendLink{}).
			Where("name = ? AND id <> ?", v, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errDuplicateName
		}
		updates["name"] = v
	}
	if raw, ok := patch["link_url"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || strings.TrimSpace(v) == "" {
			return nil, errInvalidField
		}
		updates["link_url"] = strings.TrimSpace(v)
	}
	for _, field := range []string{"logo_url", "description"} {
		raw, ok := patch[field]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidField
		}
		updates[field] = strings.TrimSpace(v)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&fl).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &fl, nil
}

func (s *Service) Delete(id uint) error {
	res := s.db.Delete(&models.FriendLink{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errLinkNotFound
	}
	return nil
}
