package models

import "time"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"size:100;not null" json:"fullname"`
	Email     string `gorm:"size:120;not null" json:"email"`
	Message   string `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralized table naming.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
