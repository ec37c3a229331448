// internal/models/shop.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name  string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Slug  string `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	Image string `json:"image" gorm:"size:512"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Product struct {
	SoftDeleteModel
	SellerID     *uuid.UUID       `json:"seller_id" gorm:"type:uuid;index"`
	Name         string           `json:"name" gorm:"size:100;not null"`
	Slug         string           `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	Desc         string           `json:"desc" gorm:"type:text"`
	PriceOld     *decimal.Decimal `json:"price_old" gorm:"type:decimal(10,2)"`
	PriceCurrent decimal.Decimal  `json:"price_current" gorm:"type:decimal(10,2);not null"`
	CategoryID   uuid.UUID        `json:"category_id" gorm:"type:uuid;not null;index"`
	InStock      int              `json:"in_stock" gorm:"default:5"`
	Images       pq.StringArray   `json:"images" gorm:"type:text[]"`

	// Relationships
	Seller   *Seller  `json:"seller,omitempty" gorm:"foreignKey:SellerID;constraint:OnDelete:SET NULL"`
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviews  []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

type Review struct {
	SoftDeleteModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text" gorm:"type:text"`

	// Relationships
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
