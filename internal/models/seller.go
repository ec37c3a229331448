// internal/models/seller.go
package models

import (
	"github.com/google/uuid"
)

// Seller is the business profile a buyer submits to start selling.
// Products stay linked to the seller until it is removed, at which point
// the reference is nulled rather than cascading into the catalog.
type Seller struct {
	BaseModel
	UserID               uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName         string    `json:"business_name" gorm:"size:255;not null"`
	Slug                 string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	IdentificationNumber string    `json:"inn_identification_number" gorm:"size:50;not null"`
	WebsiteURL           string    `json:"website_url" gorm:"size:512"`
	PhoneNumber          string    `json:"phone_number" gorm:"size:20;not null"`
	BusinessDescription  string    `json:"business_description" gorm:"type:text"`

	BusinessAddress string `json:"business_address" gorm:"size:255;not null"`
	City            string `json:"city" gorm:"size:100;not null"`
	PostalCode      string `json:"postal_code" gorm:"size:20;not null"`

	BankName          string `json:"bank_name" gorm:"size:255;not null"`
	BankBicNumber     string `json:"bank_bic_number" gorm:"size:9;not null"`
	BankAccountNumber string `json:"bank_account_number" gorm:"size:50;not null"`
	BankRoutingNumber string `json:"bank_routing_number" gorm:"size:50;not null"`

	IsApproved bool `json:"is_approved" gorm:"default:false;index"`

	// Relationships
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:SellerID"`
}
