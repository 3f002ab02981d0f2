package models

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User account states.
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// User represents an account: the single site owner (role admin) or a
// registered commenter.
type User struct {
	Model
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Role     string `json:"role"     gorm:"default:user;index"`
	Status   int    `json:"status"   gorm:"default:1"`
}

func (User) TableName() string { return "users" }

// IsAdmin reports whether the account is the site owner.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsActive reports whether the account may create content. Admins are always
// active regardless of the status column.
func (u *User) IsActive() bool { return u.IsAdmin() || u.Status == StatusEnabled }
