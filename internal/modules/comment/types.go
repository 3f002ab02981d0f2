package comment

import (
	"errors"
	"time"
)

var (
	errCommentNotFound = errors.New("comment not found")
	errArticleNotFound = errors.New("article not found")
	errParentMismatch  = errors.New("parent comment belongs to another article")
	errGuestForbidden  = errors.New("guest commenting is disabled")
	errGuestIncomplete = errors.New("guest comment needs nickname and email")
	errAccountDisabled = errors.New("account disabled")
)

// CreateDTO is the public comment submission body. Nickname and Email are
// only honored for guests; logged-in users comment under their own identity.
type CreateDTO struct {
	ArticleID uint   `json:"article_id"`
	Content   string `json:"content"`
	ParentID  *uint  `json:"parent_id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
}

// ReplyDTO is the management console reply body.
type ReplyDTO struct {
	CommentID uint   `json:"comment_id"`
	Content   string `json:"content"`
}

// UserRef is the commenter identity nested in a tree node. Nil for guests,
// whose display name lives in the node's nickname.
type UserRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Node is one comment in the rendered tree.
type Node struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	ArticleID uint      `json:"article_id"`
	ParentID  *uint     `json:"parent_id"`
	User      *UserRef  `json:"user"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []*Node   `json:"replies"`
}

// AdminRow is one row of the management console comment list. UserRole and
// UserStatus are nil for guest comments.
type AdminRow struct {
	ID           uint      `json:"id"`
	Content      string    `json:"content"`
	ArticleID    uint      `json:"article_id"`
	ArticleTitle string    `json:"article_title"`
	ParentID     *uint     `json:"parent_id"`
	UserID       *uint     `json:"user_id"`
	Username     string    `json:"username"`
	UserRole     *string   `json:"user_role"`
	UserStatus   *int      `json:"user_status"`
	Nickname     string    `json:"nickname"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
