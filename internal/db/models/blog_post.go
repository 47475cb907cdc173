package models

import "time"

// BlogPost is an article shown on the homepage, managed through the admin panel.
type BlogPost struct {
	ID uint64 `gorm:"primaryKey"`
	// Image is the public URL of the uploaded image, empty if none.
	Image    string `gorm:"size:255"`
	Category string `gorm:"size:100"`
	// CreatedAt defaults to the insert time when left zero.
	CreatedAt time.Time `gorm:"index"`
	Title     string    `gorm:"size:200;not null"`
	Body      string    `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralized table naming.
func (BlogPost) TableName() string {
	return "blog_posts"
}
