package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Base carries the primary key and audit metadata shared by all entities.
// CreatedAt/UpdatedAt are maintained by GORM, CreatedBy/UpdatedBy by the
// services (0 means the system itself, e.g. the admin bootstrap).
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
}

type User struct {
	Base
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
	DisplayName  string `json:"display_name,omitempty"`
	Role         string `gorm:"not null"             json:"role"`
}

type Post struct {
	Base
	Title            string     `gorm:"not null"             json:"title"`
	Slug             string     `gorm:"uniqueIndex;not null" json:"slug"`
	Content          string     `gorm:"type:text;not null"   json:"content"`
	FeaturedImageURL string     `json:"featured_image_url,omitempty"`
	Categories       []Category `gorm:"many2many:post_categories" json:"categories"`
}

type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}
