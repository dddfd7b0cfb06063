package models

import "gorm.io/gorm"

// Category groups pets in the catalogue.
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
