// internal/services/profile_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"
)

type ProfileService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Avatar    string `json:"avatar,omitempty" validate:"omitempty,url"`
}

type ShippingAddressRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Address  string `json:"address" validate:"required,max=255"`
	City     string `json:"city" validate:"required,max=100"`
	Country  string `json:"country" validate:"required,max=100"`
	Zipcode  string `json:"zipcode" validate:"required,max=20"`
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *ProfileService) Update(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return user, nil
}

// Deactivate disables login without destroying the account or its order
// history.
func (s *ProfileService) Deactivate(userID uuid.UUID) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}

func (s *ProfileService) ListShippingAddresses(userID uuid.UUID) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	if err := s.db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shipping addresses: %w", err)
	}
	return addresses, nil
}

// CreateShippingAddress is get-or-create: resubmitting identical details
// returns the existing row instead of duplicating the address book.
func (s *ProfileService) CreateShippingAddress(userID uuid.UUID, req *ShippingAddressRequest) (*models.ShippingAddress, bool, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, false, fmt.Errorf("validation failed: %w", err)
	}

	var address models.ShippingAddress
	err := s.db.Where(&models.ShippingAddress{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Zipcode:  req.Zipcode,
	}).First(&address).Error
	if err == nil {
		return &address, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("database error: %w", err)
	}

	address = models.ShippingAddress{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Zipcode:  req.Zipcode,
	}
	if err := s.db.Create(&address).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create shipping address: %w", err)
	}
	return &address, true, nil
}

// ownedShippingAddress resolves an address and hides other users' rows
// behind the same NotFound.
func (s *ProfileService) ownedShippingAddress(userID, shippingID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := s.db.Where("id = ? AND user_id = ?", shippingID, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shipping address", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &address, nil
}

func (s *ProfileService) GetShippingAddress(userID, shippingID uuid.UUID) (*models.ShippingAddress, error) {
	return s.ownedShippingAddress(userID, shippingID)
}

func (s *ProfileService) UpdateShippingAddress(userID, shippingID uuid.UUID, req *ShippingAddressRequest) (*models.ShippingAddress, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	address, err := s.ownedShippingAddress(userID, shippingID)
	if err != nil {
		return nil, err
	}

	address.FullName = req.FullName
	address.Email = req.Email
	address.Phone = req.Phone
	address.Address = req.Address
	address.City = req.City
	address.Country = req.Country
	address.Zipcode = req.Zipcode

	if err := s.db.Save(address).Error; err != nil {
		return nil, fmt.Errorf("failed to update shipping address: %w", err)
	}
	return address, nil
}

func (s *ProfileService) DeleteShippingAddress(userID, shippingID uuid.UUID) error {
	address, err := s.ownedShippingAddress(userID, shippingID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(address).Error; err != nil {
		return fmt.Errorf("failed to delete shipping address: %w", err)
	}
	return nil
}
