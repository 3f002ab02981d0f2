package tag

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkflow/blog-core/internal/database"
	"github.com/inkflow/blog-core/internal/models"
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

func TestCreateRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if _, err := svc.Create("golang"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create("golang"); err != errDuplicateName {
		t.Fatalf("err = %v, want errDuplicateName", err)
	}
	if _, err := svc.Create("  golang  "); err != errDuplicateName {
		t.Fatalf("err = %v, want errDuplicateName for trimmed name", err)
	}
}

func TestUpdateDuplicateCheckSkipsSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	tag, err := svc.Create("golang")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create("sqlite"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(tag.ID, "golang"); err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if _, err := svc.Update(tag.ID, "sqlite"); err != errDuplicateName {
		t.Fatalf("err = %v, want errDuplicateName", err)
	}
}

func TestDeleteClearsArticleLinks(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	tag, err := svc.Create("golang")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a := models.Article{Title: "t", Content: "c", Status: models.ArticlePublished, Tags: []models.Tag{*tag}}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}

	if err := svc.Delete(tag.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var joins int64
	db.Table("article_tags").Where("tag_id = ?", tag.ID).Count(&joins)
	if joins != 0 {
		t.Errorf("join rows left = %d", joins)
	}
	// The article itself survives.
	if err := db.First(&models.Article{}, a.ID).Error; err != nil {
		t.Errorf("article gone after tag delete: %v", err)
	}
}

func TestListCountsArticles(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	used, err := svc.Create("golang")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	unused, err := svc.Create("rust")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a := models.Article{Title: "t", Content: "c", Status: models.ArticlePublished, Tags: []models.Tag{*used}}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	counts := map[uint]int64{}
	for _, row := range list {
		counts[row.ID] = row.ArticleCount
	}
	if counts[used.ID] != 1 || counts[unused.ID] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestDeleteMissingTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if err := svc.Delete(9999); err != errTagNotFound {
		t.Fatalf("err = %v, want errTagNotFound", err)
	}
}
