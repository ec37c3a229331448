// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	FirstName    string      `json:"first_name" gorm:"size:100;not null"`
	LastName     string      `json:"last_name" gorm:"size:100;not null"`
	Email        string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"`
	AccountType  AccountType `json:"account_type" gorm:"type:varchar(10);default:'BUYER'"`
	IsStaff      bool        `json:"is_staff" gorm:"default:false"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
	Avatar       string      `json:"avatar" gorm:"size:512"`

	// Relationships
	Seller            *Seller           `json:"seller,omitempty" gorm:"foreignKey:UserID"`
	ShippingAddresses []ShippingAddress `json:"shipping_addresses,omitempty" gorm:"foreignKey:UserID"`
	Orders            []Order           `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
