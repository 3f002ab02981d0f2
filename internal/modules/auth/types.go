package auth

import (
	"errors"

	"github.com/inkflow/blog-core/internal/models"
)

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	// One message for unknown user and wrong password: no account enumeration.
	errInvalidCredentials = errors.New("invalid credentials")
	errNotAdmin           = errors.New("account is not admin")
	errAdminAccount       = errors.New("admin must use admin login")
	errAccountDisabled    = errors.New("account disabled")
	errUsernameTaken      = errors.New("username taken")
)

// userSummary is the identity payload returned alongside a token.
type userSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Status   int    `json:"status"`
}

func toSummary(u *models.User) userSummary {
	return userSummary{
		ID:       u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
	}
}
