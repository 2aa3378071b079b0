package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is one checkout attempt against a store. It is created unpaid by the
// checkout flow and flips to paid exactly once, driven by a verified payment
// webhook. Phone and address stay empty until that transition.
type Order struct {
	ID         string      `gorm:"primaryKey" json:"id"`
	StoreID    string      `gorm:"not null;index" json:"store_id"`
	IsPaid     bool        `gorm:"not null;default:false" json:"is_paid"`
	Phone      string      `gorm:"not null;default:''" json:"phone"`
	Address    string      `gorm:"not null;default:''" json:"address"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt  int64       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  int64       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem joins an order to one purchased product, quantity implicitly 1.
// Created atomically with its order and never updated afterwards.
type OrderItem struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"not null;index" json:"order_id"`
	ProductID string  `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate assigns a fresh UUID when none was provided
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
