// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums

// OrderStatus is the order lifecycle enumeration. The normal progression is
// pending -> shipped -> completed. "paid" is reserved: the store accepts it
// and seller rollups count it as pending-to-ship, but no transition in the
// checkout flow produces it.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
)

// orderTransitions is the exhaustive transition table. Anything not listed is
// an invalid transition.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped},
	OrderStatusPaid:      {OrderStatusShipped},
	OrderStatusShipped:   {OrderStatusCompleted},
	OrderStatusCompleted: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether the status may move forward to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AwaitingShipment reports whether an order still needs seller action.
func (s OrderStatus) AwaitingShipment() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}

// PaymentMethod is the closed set of payment choices offered at checkout.
type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodGcash PaymentMethod = "gcash"
	PaymentMethodCard  PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodGcash, PaymentMethodCard:
		return true
	}
	return false
}
