package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewService(db *gorm.DB, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = jwt.DefaultTTL
	}
	return &Service{db: db, ttl: tokenTTL}
}

// AdminLogin authenticates the site owner for the management console.
func (s *Service) AdminLogin(username, password string) (string, *models.User, error) {
	u, err := s.checkCredentials(username, password)
	if err != nil {
		return "", nil, err
	}
	if !u.IsAdmin() {
		return "", nil, errNotAdmin
	}
	token, err := s.issueToken(u)
	return token, u, err
}

// UserLogin authenticates a registered commenter on the public site.
func (s *Service) UserLogin(username, password string) (string, *models.User, error) {
	u, err := s.checkCredentials(username, password)
	if err != nil {
		return "", nil, err
	}
	if u.IsAdmin() {
		return "", nil, errAdminAccount
	}
	if u.Status != models.StatusEnabled {
		return "", nil, errAccountDisabled
	}
	token, err := s.issueToken(u)
	return token, u, err
}

// Register creates an enabled non-admin account and returns a session token
// so the caller is logged in immediately.
func (s *Service) Register(dto *RegisterDTO) (string, *models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", dto.Username).Count(&count)
	if count > 0 {
		return "", nil, errUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u := models.User{
		Username: dto.Username,
		Password: string(hash),
		Nickname: dto.Username,
		Role:     models.RoleUser,
		Status:   models.StatusEnabled,
	}
	if err := s.db.Create(&u).Error; err != nil {
		// Pre-check raced with a concurrent registration; the unique index
		// is the source of truth.
		if isUniqueViolation(err) {
			return "", nil, errUsernameTaken
		}
		return "", nil, err
	}

	token, err := s.issueToken(&u)
	return token, &u, err
}

func (s *Service) checkCredentials(username, password string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return &u, nil
}

func (s *Service) issueToken(u *models.User) (string, error) {
	return jwt.Sign(u.ID, u.Username, u.Role, u.Status, s.ttl)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
