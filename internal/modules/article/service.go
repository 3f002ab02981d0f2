package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/pagination"
	"github.com/inkflow/blog-core/internal/pkg/redis"
)

// Service implements article persistence and the like/view counters.
type Service struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewService(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

// List returns a page of articles ordered by pinned-first, newest-first.
func (s *Service) List(q pagination.Query, f ListFilter) ([]models.Article, int64, error) {
	tx := s.db.Model(&models.Article{}).
		Preload("Category").
		Preload("Tags").
		Order("is_top DESC, created_at DESC")
	if f.Status != nil {
		tx = tx.Where("status = ?", *f.Status)
	}
	if f.CateID != nil {
		tx = tx.Where("cate_id = ?", *f.CateID)
	}
	if f.Keyword != "" {
		tx = tx.Where("title LIKE ?", "%"+f.Keyword+"%")
	}

	var list []models.Article
	total, err := pagination.Paginate(tx, q, &list)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Get loads an article with its category and tags.
func (s *Service) Get(id uint) (*models.Article, error) {
	var a models.Article
	err := s.db.Preload("Category").Preload("Tags").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// IncrementView bumps view_count without touching updated_at.
func (s *Service) IncrementView(id uint) error {
	return s.db.Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Like bumps like_count. When a cache is connected, each client IP counts
// at most once per article per day.
func (s *Service) Like(ctx context.Context, id uint, clientIP string) (bool, error) {
	var a models.Article
	if err := s.db.Select("id").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errArticleNotFound
		}
		return false, err
	}

	if s.cache.Available() && clientIP != "" {
		key := fmt.Sprintf("article:like:%d:%s:%s", id, clientIP, time.Now().Format("2006-01-02"))
		ok, err := s.cache.SetNX(ctx, key, 1, 24*time.Hour)
		if err == nil && !ok {
			return false, nil
		}
	}

	err := s.db.Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts an article and its tag associations.
func (s *Service) Create(dto *CreateArticleDTO) (*models.Article, error) {
	a := models.Article{
		Title:    dto.Title,
		Content:  dto.Content,
		CoverImg: dto.CoverImg,
		Summary:  dto.Summary,
		CateID:   dto.CateID,
		Status:   models.ArticlePublished,
	}
	if a.Summary == "" {
		a.Summary = truncateRunes(dto.Title, 80)
	}
	if dto.Status != nil {
		a.Status = *dto.Status
	}
	if dto.IsTop != nil {
		a.IsTop = *dto.IsTop
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(dto.TagIDs) > 0 {
			tags, err := s.resolveTags(tx, dto.TagIDs)
			if err != nil {
				return err
			}
			a.Tags = tags
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(a.ID)
}

// Update applies a merge patch: only keys present in the body change, and an
// explicit null clears nullable columns. A tag_ids array replaces the whole
// tag set; tag_ids null leaves it untouched.
func (s *Service) Update(id uint, patch map[string]json.RawMessage) (*models.Article, error) {
	var a models.Article
	if err := s.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errArticleNotFound
		}
		return nil, err
	}

	updates := map[string]any{}
	if raw, ok := patch["title"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v == "" {
			return nil, errInvalidPatch("title")
		}
		updates["title"] = v
	}
	if raw, ok := patch["content"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v == "" {
			return nil, errInvalidPatch("content")
		}
		updates["content"] = v
	}
	if raw, ok := patch["cover_img"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidPatch("cover_img")
		}
		updates["cover_img"] = v
	}
	if raw, ok := patch["summary"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidPatch("summary")
		}
		updates["summary"] = v
	}
	if raw, ok := patch["status"]; ok {
		var v int
		if err := json.Unmarshal(raw, &v); err != nil || (v != models.ArticleDraft && v != models.ArticlePublished) {
			return nil, errInvalidPatch("status")
		}
		updates["status"] = v
	}
	if raw, ok := patch["is_top"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidPatch("is_top")
		}
		updates["is_top"] = v
	}
	if raw, ok := patch["cate_id"]; ok {
		var v *uint
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidPatch("cate_id")
		}
		updates["cate_id"] = v
	}

	var tagIDs []uint
	replaceTags := false
	if raw, ok := patch["tag_ids"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &tagIDs); err != nil {
			return nil, errInvalidPatch("tag_ids")
		}
		replaceTags = true
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&a).Updates(updates).Error; err != nil {
				return err
			}
		}
		if replaceTags {
			tags, err := s.resolveTags(tx, tagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&a).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// SetTop pins or unpins an article. A nil value toggles the current state.
func (s *Service) SetTop(id uint, top *bool) (bool, error) {
	var a models.Article
	if err := s.db.Select("id", "is_top").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errArticleNotFound
		}
		return false, err
	}
	next := !a.IsTop
	if top != nil {
		next = *top
	}
	err := s.db.Model(&a).UpdateColumn("is_top", next).Error
	return next, err
}

// Delete removes an article along with its comments and tag associations.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var a models.Article
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errArticleNotFound
			}
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&a).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}

func (s *Service) resolveTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(dedupeIDs(ids)) {
		return nil, errTagNotFound
	}
	return tags, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

var errTagNotFound = errors.New("tag not found")

type patchFieldError struct{ field string }

func (e patchFieldError) Error() string { return "invalid value for field " + e.field }

func errInvalidPatch(field string) error { return patchFieldError{field: field} }
