package article

import (
	"errors"
	"time"

	"github.com/inkflow/blog-core/internal/models"
)

// CreateArticleDTO is the request body for publishing an article.
type CreateArticleDTO struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	CoverImg string `json:"cover_img"`
	Summary  string `json:"summary"`
	CateID   *uint  `json:"cate_id"`
	Status   *int   `json:"status"`
	IsTop    *bool  `json:"is_top"`
	TagIDs   []uint `json:"tag_ids"`
}

// ListFilter holds the optional list query filters.
type ListFilter struct {
	CateID  *uint
	Keyword string
	Status  *int
}

type categoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type tagRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// articleResponse is the denormalized projection for list and detail views.
type articleResponse struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	CoverImg  string       `json:"cover_img"`
	Summary   string       `json:"summary"`
	ViewCount int          `json:"view_count"`
	LikeCount int          `json:"like_count"`
	IsTop     bool         `json:"is_top"`
	Status    int          `json:"status"`
	CateID    *uint        `json:"cate_id"`
	Category  *categoryRef `json:"category"`
	Tags      []tagRef     `json:"tags"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func toResponse(a *models.Article) articleResponse {
	var cat *categoryRef
	if a.Category != nil {
		cat = &categoryRef{ID: a.Category.ID, Name: a.Category.Name}
	}
	tags := make([]tagRef, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, tagRef{ID: t.ID, Name: t.Name})
	}
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CoverImg:  a.CoverImg,
		Summary:   a.Summary,
		ViewCount: a.ViewCount,
		LikeCount: a.LikeCount,
		IsTop:     a.IsTop,
		Status:    a.Status,
		CateID:    a.CateID,
		Category:  cat,
		Tags:      tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

var errArticleNotFound = errors.New("article not found")
