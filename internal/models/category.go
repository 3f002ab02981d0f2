package models

// Category groups articles. Deleting a category detaches its articles
// (cate_id set to NULL) instead of deleting them.
type Category struct {
	Model
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Alias string `json:"alias"`
}

func (Category) TableName() string { return "categories" }
