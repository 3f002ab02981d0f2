package models

// FriendLink is an entry on the public links page.
type FriendLink struct {
	Model
	Name        string `json:"name"        gorm:"not null"`
	LinkURL     string `json:"link_url"    gorm:"not null"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

func (FriendLink) TableName() string { return "friend_links" }
