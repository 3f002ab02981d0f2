package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/pagination"
)

var (
	errUserNotFound   = errors.New("user not found")
	errAdminProtected = errors.New("admin account cannot be modified here")
)

// Row is one entry of the console user list; the password column never
// leaves the service.
type Row struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	Avatar       string    `json:"avatar"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       int       `json:"status"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List pages through registered users with their comment counts.
func (s *Service) List(q pagination.Query, keyword string, status *int) ([]Row, int64, error) {
	tx := s.db.Model(&models.User{}).
		Select("users.id, users.username, users.nickname, users.avatar, users.email, users.role, users.status, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.user_id = users.id) AS comment_count, users.created_at").
		Where("users.role = ?", models.RoleUser).
		Order("users.created_at DESC")
	if keyword != "" {
		like := "%" + keyword + "%"
		tx = tx.Where("users.username LIKE ? OR users.nickname LIKE ?", like, like)
	}
	if status != nil {
		tx = tx.Where("users.status = ?", *status)
	}

	var rows []Row
	total, err := pagination.Paginate(tx, q, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetStatus enables or disables a regular account.
func (s *Service) SetStatus(id uint, status int) error {
	u, err := s.regularUser(id)
	if err != nil {
		return err
	}
	return s.db.Model(u).UpdateColumn("status", status).Error
}

// ResetPassword overwrites the password of a regular account.
func (s *Service) ResetPassword(id uint, password string) error {
	u, err := s.regularUser(id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(u).UpdateColumn("password", string(hash)).Error
}

// Delete removes a regular account along with its comments.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if u.IsAdmin() {
			return errAdminProtected
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

func (s *Service) regularUser(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	if u.IsAdmin() {
		return nil, errAdminProtected
	}
	return &u, nil
}
