package db

import "gorm.io/gorm"

// Page represents a standalone content page such as About or Maintenance.
type Page struct {
	gorm.Model
	Slug         string `gorm:"uniqueIndex;not null"`
	Title        string `gorm:"not null"`
	Content      string `gorm:"type:text"`
	Status       string `gorm:"size:20;not null;default:'draft'"`
	TemplateSlug string `gorm:"size:200"`
}
