package settings

import (
	"encoding/json"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
)

var (
	errOwnerNotFound    = errors.New("owner account not found")
	errWrongOldPassword = errors.New("old password does not match")
	errInvalidField     = errors.New("invalid settings field")
)

// Profile is the public site-owner card shown on the front page.
type Profile struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
}

// Stats is the console dashboard payload.
type Stats struct {
	ArticleCount   int64 `json:"article_count"`
	CategoryCount  int64 `json:"category_count"`
	TagCount       int64 `json:"tag_count"`
	CommentCount   int64 `json:"comment_count"`
	UserCount      int64 `json:"user_count"`
	TotalViewCount int64 `json:"total_view_count"`
	TotalLikeCount int64 `json:"total_like_count"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Profile returns the owner's public profile.
func (s *Service) Profile() (*Profile, error) {
	owner, err := s.owner()
	if err != nil {
		return nil, err
	}
	return &Profile{Nickname: owner.Nickname, Avatar: owner.Avatar, Email: owner.Email}, nil
}

// Update applies a merge patch to the owner profile. A password change
// requires the old password alongside the new one.
func (s *Service) Update(patch map[string]json.RawMessage) (*Profile, error) {
	owner, err := s.owner()
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	for _, field := range []string{"nickname", "avatar", "email"} {
		raw, ok := patch[field]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errInvalidField
		}
		updates[field] = v
	}

	if raw, ok := patch["password"]; ok {
		var newPass, oldPass string
		if err := json.Unmarshal(raw, &newPass); err != nil || len(newPass) < 6 {
			return nil, errInvalidField
		}
		oldRaw, ok := patch["old_password"]
		if !ok || json.Unmarshal(oldRaw, &oldPass) != nil {
			return nil, errInvalidField
		}
		if bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(oldPass)) != nil {
			return nil, errWrongOldPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.Model(owner).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Profile()
}

// Stats collects the dashboard counters in one pass.
func (s *Service) Stats() (*Stats, error) {
	var st Stats
	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Article{}, &st.ArticleCount},
		{&models.Category{}, &st.CategoryCount},
		{&models.Tag{}, &st.TagCount},
		{&models.Comment{}, &st.CommentCount},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleUser).Count(&st.UserCount).Error; err != nil {
		return nil, err
	}

	var sums struct {
		Views int64
		Likes int64
	}
	err := s.db.Model(&models.Article{}).
		Select("COALESCE(SUM(view_count), 0) AS views, COALESCE(SUM(like_count), 0) AS likes").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	st.TotalViewCount = sums.Views
	st.TotalLikeCount = sums.Likes
	return &st, nil
}

func (s *Service) owner() (*models.User, error) {
	var owner models.User
	err := s.db.Where("role = ?", models.RoleAdmin).Order("id ASC").First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}
