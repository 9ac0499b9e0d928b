// internal/models/user.go
package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	FirstName    string `json:"first_name" gorm:"size:100;not null"`
	LastName     string `json:"last_name" gorm:"size:100;not null"`
	// Contact is an 11-digit PH mobile number starting with 09.
	Contact         string     `json:"contact" gorm:"size:11"`
	Address         JSONB      `json:"address" gorm:"type:jsonb"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`

	VerificationToken   string     `json:"-" gorm:"size:64;index"`
	ResetToken          string     `json:"-" gorm:"size:64;index"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	// Relationships
	Products  []Product  `json:"products,omitempty" gorm:"foreignKey:SellerID"`
	CartItems []CartItem `json:"cart_items,omitempty" gorm:"foreignKey:BuyerID"`
	Orders    []Order    `json:"orders,omitempty" gorm:"foreignKey:BuyerID"`
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

func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SavedAddress assembles the profile address snapshot into the flat delivery
// fields used to prefill the checkout form. A missing or partial snapshot
// simply yields blank fields.
func (u *User) SavedAddress() DeliveryDetails {
	addr := u.Address
	get := func(key string) string {
		if addr == nil {
			return ""
		}
		if v, ok := addr[key].(string); ok {
			return v
		}
		return ""
	}

	houseStreet := joinNonEmpty(", ", get("house_no"), get("street"))
	barangay := get("barangay")
	if barangay != "" {
		barangay = "Brgy. " + barangay
	}
	full := joinNonEmpty(", ", houseStreet, barangay, get("city"), get("province"), get("zip_code"))

	return DeliveryDetails{
		FullName:   u.DisplayName(),
		Phone:      u.Contact,
		Address:    full,
		City:       get("city"),
		PostalCode: get("zip_code"),
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
