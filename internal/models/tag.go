package models

// Tag labels articles through the article_tags join table. Membership is
// replaced wholesale when an article update supplies tag ids.
type Tag struct {
	Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Tag) TableName() string { return "tags" }
