package models

// Article publish states.
const (
	ArticleDraft     = 0
	ArticlePublished = 1
)

// Article is a blog post. Content is stored as HTML produced by the editor.
type Article struct {
	Model
	Title     string    `json:"title"      gorm:"not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CoverImg  string    `json:"cover_img"`
	Summary   string    `json:"summary"`
	ViewCount int       `json:"view_count" gorm:"default:0"`
	LikeCount int       `json:"like_count" gorm:"default:0"`
	IsTop     bool      `json:"is_top"     gorm:"default:false;index"`
	Status    int       `json:"status"     gorm:"default:1;index"`
	CateID    *uint     `json:"cate_id"    gorm:"index"`
	Category  *Category `json:"category"   gorm:"foreignKey:CateID"`
	Tags      []Tag     `json:"tags"       gorm:"many2many:article_tags;"`
}

func (Article) TableName() string { return "articles" }
