package app

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/config"
	"github.com/inkflow/blog-core/internal/models"
)

// seedAdmin creates the owner account on first startup so the console is
// reachable out of the box. Existing admins are left untouched.
func seedAdmin(db *gorm.DB, cfg *config.AppConfig, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: cfg.Admin.Username,
		Password: string(hash),
		Nickname: cfg.Admin.Nickname,
		Email:    cfg.Admin.Email,
		Role:     models.RoleAdmin,
		Status:   models.StatusEnabled,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("admin account created", zap.String("username", admin.Username))
	return nil
}
