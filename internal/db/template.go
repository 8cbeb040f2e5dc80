package db

import "gorm.io/gorm"

// Template 是页面使用的展示模板（区块标记）。
type Template struct {
	gorm.Model
	Slug    string `gorm:"size:200;uniqueIndex;not null"`
	Title   string `gorm:"not null"`
	Content string `gorm:"type:text"`
	Excerpt string
	Status  string `gorm:"size:20;not null;default:'publish'"`
	GUID    string `gorm:"column:guid;size:64"`
	Theme   string `gorm:"size:100"`
}
