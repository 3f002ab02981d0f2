package friendlink

import (
	"encoding/json"
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

	if _, err := svc.Create(&UpsertDTO{Name: "Go 博客", LinkURL: "https://go.example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(&UpsertDTO{Name: "  Go 博客  ", LinkURL: "https://other.example.com"})
	if err != errDuplicateName {
		t.Fatalf("err = %v, want errDuplicateName", err)
	}
}

func TestUpdatePreservesOmittedFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	fl, err := svc.Create(&UpsertDTO{
		Name:        "Go 博客",
		LinkURL:     "https://go.example.com",
		LogoURL:     "https://go.example.com/logo.png",
		Description: "一个 Go 技术博客",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(fl.ID, map[string]json.RawMessage{
		"name": json.RawMessage(`"Gopher 日志"`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var got models.FriendLink
	if err := db.First(&got, fl.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Gopher 日志" {
		t.Errorf("name = %q", got.Name)
	}
	if got.LogoURL != "https://go.example.com/logo.png" {
		t.Errorf("logo_url lost: %q", got.LogoURL)
	}
	if got.Description != "一个 Go 技术博客" {
		t.Errorf("description lost: %q", got.Description)
	}
	if got.LinkURL != "https://go.example.com" {
		t.Errorf("link_url lost: %q", got.LinkURL)
	}
}

func TestUpdateRejectsBadFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	fl, err := svc.Create(&UpsertDTO{Name: "Go 博客", LinkURL: "https://go.example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(fl.ID, map[string]json.RawMessage{
		"name": json.RawMessage(`"  "`),
	}); err != errInvalidField {
		t.Errorf("blank name: err = %v, want errInvalidField", err)
	}
	if _, err := svc.Update(fl.ID, map[string]json.RawMessage{
		"link_url": json.RawMessage(`""`),
	}); err != errInvalidField {
		t.Errorf("blank link_url: err = %v, want errInvalidField", err)
	}
}

func TestUpdateDuplicateCheckSkipsSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	fl, err := svc.Create(&UpsertDTO{Name: "Go 博客", LinkURL: "https://go.example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(&UpsertDTO{Name: "Rust 博客", LinkURL: "https://rs.example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(fl.ID, map[string]json.RawMessage{
		"name": json.RawMessage(`"Go 博客"`),
	}); err != nil {
		t.Errorf("self rename: %v", err)
	}
	if _, err := svc.Update(fl.ID, map[string]json.RawMessage{
		"name": json.RawMessage(`"Rust 博客"`),
	}); err != errDuplicateName {
		t.Errorf("err = %v, want errDuplicateName", err)
	}
}

func TestDeleteMissingLink(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if err := svc.Delete(9999); err != errLinkNotFound {
		t.Fatalf("err = %v, want errLinkNotFound", err)
	}
}
