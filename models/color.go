package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Color is a product attribute dimension (e.g. name "Crimson", value "#DC143C").
type Color struct {
	ID        string `gorm:"primaryKey" json:"id"`
	StoreID   string `gorm:"not null;index" json:"store_id"`
	Name      string `gorm:"not null" json:"name"`
	Value     string `gorm:"not null" json:"value"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Color model
func (Color) TableName() string {
	return "colors"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (c *Color) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
