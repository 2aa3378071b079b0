package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the tenant root. Every catalog entity and order hangs off a store,
// and the owning identity (the `sub` claim of the acting user) gates all writes.
type Store struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	UserID    string `gorm:"not null;index" json:"user_id"` // owning identity from the identity provider
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Store model
func (Store) TableName() string {
	return "stores"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
