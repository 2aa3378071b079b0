package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Size is a product attribute dimension (e.g. name "Small", value "S").
type Size struct {
	ID        string `gorm:"primaryKey" json:"id"`
	StoreID   string `gorm:"not null;index" json:"store_id"`
	Name      string `gorm:"not null" json:"name"`
	Value     string `gorm:"not null" json:"value"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Size model
func (Size) TableName() string {
	return "sizes"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (s *Size) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
