package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Billboard is a promotional banner scoped to one store. Categories reference
// a billboard for their landing imagery.
type Billboard struct {
	ID        string `gorm:"primaryKey" json:"id"`
	StoreID   string `gorm:"not null;index" json:"store_id"`
	Label     string `gorm:"not null" json:"label"`
	ImageURL  string `gorm:"not null" json:"image_url"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Billboard model
func (Billboard) TableName() string {
	return "billboards"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (b *Billboard) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
