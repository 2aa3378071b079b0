package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products within a store and references exactly one billboard.
type Category struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	StoreID     string    `gorm:"not null;index" json:"store_id"`
	BillboardID string    `gorm:"not null;index" json:"billboard_id"`
	Billboard   Billboard `gorm:"foreignKey:BillboardID" json:"billboard,omitempty"`
	Name        string    `gorm:"not null" json:"name"`
	CreatedAt   int64     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   int64     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
