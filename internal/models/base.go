package models

import "time"

// Model is the base for all entities. Integer autoincrement primary keys;
// rows are hard-deleted, so no soft-delete column.
type Model struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
