package models

// Comment is attached to an article; parent_id forms the reply tree, nil
// meaning a root comment. Registered commenters are recorded by user_id;
// nickname/email remain for guest comments and legacy rows whose account
// was deleted.
type Comment struct {
	Model
	Content   string `json:"content"    gorm:"type:text;not null"`
	ArticleID uint   `json:"article_id" gorm:"not null;index"`
	ParentID  *uint  `json:"parent_id"  gorm:"index"`
	UserID    *uint  `json:"user_id"    gorm:"index"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"   gorm:"default:false"`
}

func (Comment) TableName() string { return "comments" }
