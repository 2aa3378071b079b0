package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a sellable item. Each listing is effectively unique stock: once
// purchased it is archived rather than decremented, so there is no quantity
// column anywhere in the catalog.
type Product struct {
	ID         string   `gorm:"primaryKey" json:"id"`
	StoreID    string   `gorm:"not null;index" json:"store_id"`
	CategoryID string   `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name       string   `gorm:"not null" json:"name"`
	Price      float64  `gorm:"not null;check:price > 0" json:"price"`
	IsFeatured bool     `gorm:"not null;default:false" json:"is_featured"`
	IsArchived bool     `gorm:"not null;default:false" json:"is_archived"` // archived = not orderable or publicly visible
	SizeID     string   `gorm:"not null;index" json:"size_id"`
	Size       Size     `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	ColorID    string   `gorm:"not null;index" json:"color_id"`
	Color      Color    `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	Images     []Image  `gorm:"foreignKey:ProductID" json:"images"`
	CreatedAt  int64    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  int64    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Image is one hosted image URL attached to a product. Images live and die
// with their product: product updates replace the full set, product deletes
// remove it.
type Image struct {
	ID        string `gorm:"primaryKey" json:"id"`
	ProductID string `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Image model
func (Image) TableName() string {
	return "images"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
