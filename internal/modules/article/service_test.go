package article

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkflow/blog-core/internal/database"
	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), logger.Silent)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTags(t *testing.T, db *gorm.DB, names ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		if err := db.Create(&tag).Error; err != nil {
			t.Fatalf("seed tag %s: %v", name, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids
}

func TestCreateAttachesTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	tagIDs := seedTags(t, db, "go", "sqlite")

	a, err := svc.Create(&CreateArticleDTO{
		Title:   "第一篇文章",
		Content: "正文",
		TagIDs:  tagIDs,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(a.Tags) != 2 {
		t.Fatalf("tags = %d, want 2", len(a.Tags))
	}
	if a.Status != models.ArticlePublished {
		t.Errorf("status = %d, want published", a.Status)
	}
	if a.Summary != "第一篇文章" {
		t.Errorf("summary = %q, want title fallback", a.Summary)
	}
}

func TestCreateRejectsUnknownTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	_, err := svc.Create(&CreateArticleDTO{Title: "t", Content: "c", TagIDs: []uint{999}})
	if err != errTagNotFound {
		t.Fatalf("err = %v, want errTagNotFound", err)
	}
}

func TestListDefaultStatusAndOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	draft := models.Article{Title: "draft", Content: "x", Status: models.ArticleDraft}
	older := models.Article{Title: "older", Content: "x", Status: models.ArticlePublished}
	pinned := models.Article{Title: "pinned", Content: "x", Status: models.ArticlePublished, IsTop: true}
	for _, a := range []*models.Article{&draft, &older, &pinned} {
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	published := models.ArticlePublished
	list, total, err := svc.List(pagination.Query{Page: 1, PageSize: 10}, ListFilter{Status: &published})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (draft hidden)", total)
	}
	if list[0].Title != "pinned" {
		t.Errorf("first = %q, want the pinned article", list[0].Title)
	}

	draftStatus := models.ArticleDraft
	_, total, err = svc.List(pagination.Query{Page: 1, PageSize: 10}, ListFilter{Status: &draftStatus})
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	if total != 1 {
		t.Errorf("draft total = %d, want 1", total)
	}
}

func TestListKeywordMatchesTitleOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	for _, a := range []models.Article{
		{Title: "Go 并发模型", Content: "sqlite 在正文里", Status: models.ArticlePublished},
		{Title: "sqlite 调优", Content: "正文", Status: models.ArticlePublished},
	} {
		if err := db.Create(&a).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	published := models.ArticlePublished
	list, total, err := svc.List(pagination.Query{Page: 1, PageSize: 10},
		ListFilter{Keyword: "sqlite", Status: &published})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// Keyword is a title substring match; body text does not count.
	if total != 1 || list[0].Title != "sqlite 调优" {
		t.Errorf("keyword matched %d rows, want the title match only", total)
	}
}

func TestIncrementViewTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := models.Article{Title: "t", Content: "c", Status: models.ArticlePublished}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.IncrementView(a.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	got, err := svc.Get(a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ViewCount != 2 {
		t.Errorf("view_count = %d, want 2", got.ViewCount)
	}
}

func TestLikeWithoutCacheCountsEveryCall(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := models.Article{Title: "t", Content: "c", Status: models.ArticlePublished}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	for i := 0; i < 3; i++ {
		counted, err := svc.Like(context.Background(), a.ID, "1.2.3.4")
		if err != nil {
			t.Fatalf("like: %v", err)
		}
		if !counted {
			t.Fatal("like not counted without a cache")
		}
	}

	got, _ := svc.Get(a.ID)
	if got.LikeCount != 3 {
		t.Errorf("like_count = %d, want 3", got.LikeCount)
	}
}

func TestUpdateMergePatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	tagIDs := seedTags(t, db, "a", "b")

	cat := models.Category{Name: "tech"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	a, err := svc.Create(&CreateArticleDTO{
		Title: "原标题", Content: "原内容", CateID: &cat.ID, TagIDs: tagIDs,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Only the title key is present: everything else must survive.
	got, err := svc.Update(a.ID, map[string]json.RawMessage{
		"title": json.RawMessage(`"新标题"`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "新标题" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Content != "原内容" {
		t.Errorf("content changed: %q", got.Content)
	}
	if got.CateID == nil || *got.CateID != cat.ID {
		t.Error("cate_id changed by an unrelated patch")
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags = %d, want untouched 2", len(got.Tags))
	}
}

func TestUpdateExplicitNullClearsCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	cat := models.Category{Name: "tech"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	a, err := svc.Create(&CreateArticleDTO{Title: "t", Content: "c", CateID: &cat.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Update(a.ID, map[string]json.RawMessage{
		"cate_id": json.RawMessage(`null`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CateID != nil {
		t.Errorf("cate_id = %v, want nil after explicit null", *got.CateID)
	}
}

func TestUpdateTagSemantics(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	tagIDs := seedTags(t, db, "a", "b", "c")

	a, err := svc.Create(&CreateArticleDTO{Title: "t", Content: "c", TagIDs: tagIDs[:2]})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Replace with a different set.
	got, err := svc.Update(a.ID, map[string]json.RawMessage{
		"tag_ids": mustJSON(t, []uint{tagIDs[2]}),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != tagIDs[2] {
		t.Fatalf("tags after replace = %+v", got.Tags)
	}

	// Empty array clears all tags.
	got, err = svc.Update(a.ID, map[string]json.RawMessage{
		"tag_ids": json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Fatalf("tags after clear = %d, want 0", len(got.Tags))
	}

	// Null leaves the (now empty) set untouched; other keys still apply.
	got, err = svc.Update(a.ID, map[string]json.RawMessage{
		"tag_ids": json.RawMessage(`null`),
		"title":   json.RawMessage(`"renamed"`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "renamed" || len(got.Tags) != 0 {
		t.Errorf("title=%q tags=%d after null tag_ids", got.Title, len(got.Tags))
	}
}

func TestSetTopToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)

	a := models.Article{Title: "t", Content: "c", Status: models.ArticlePublished}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	top, err := svc.SetTop(a.ID, nil)
	if err != nil || !top {
		t.Fatalf("toggle on: top=%v err=%v", top, err)
	}
	top, err = svc.SetTop(a.ID, nil)
	if err != nil || top {
		t.Fatalf("toggle off: top=%v err=%v", top, err)
	}

	explicit := true
	top, err = svc.SetTop(a.ID, &explicit)
	if err != nil || !top {
		t.Fatalf("explicit set: top=%v err=%v", top, err)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, nil)
	tagIDs := seedTags(t, db, "a")

	a, err := svc.Create(&CreateArticleDTO{Title: "t", Content: "c", TagIDs: tagIDs})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	cm := models.Comment{Content: "hi", ArticleID: a.ID, Nickname: "guest"}
	if err := db.Create(&cm).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var comments, joins int64
	db.Model(&models.Comment{}).Where("article_id = ?", a.ID).Count(&comments)
	db.Table("article_tags").Where("article_id = ?", a.ID).Count(&joins)
	if comments != 0 {
		t.Errorf("comments left = %d", comments)
	}
	if joins != 0 {
		t.Errorf("tag joins left = %d", joins)
	}

	if _, err := svc.Get(a.ID); err != errArticleNotFound {
		t.Errorf("get after delete = %v, want errArticleNotFound", err)
	}

	// Tags themselves survive.
	var tags int64
	db.Model(&models.Tag{}).Count(&tags)
	if tags != 1 {
		t.Errorf("tags = %d, want 1", tags)
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
