// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted}

	allowed := map[OrderStatus]OrderStatus{
		OrderStatusPending: OrderStatusShipped,
		OrderStatusPaid:    OrderStatusShipped,
		OrderStatusShipped: OrderStatusCompleted,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from] == to
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusCompletedIsTerminal(t *testing.T) {
	for _, to := range []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted} {
		assert.False(t, OrderStatusCompleted.CanTransition(to))
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusPaid.Valid())
	assert.True(t, OrderStatusShipped.Valid())
	assert.True(t, OrderStatusCompleted.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestAwaitingShipment(t *testing.T) {
	assert.True(t, OrderStatusPending.AwaitingShipment())
	assert.True(t, OrderStatusPaid.AwaitingShipment())
	assert.False(t, OrderStatusShipped.AwaitingShipment())
	assert.False(t, OrderStatusCompleted.AwaitingShipment())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodCOD.Valid())
	assert.True(t, PaymentMethodGcash.Valid())
	assert.True(t, PaymentMethodCard.Valid())
	assert.False(t, PaymentMethod("paypal").Valid())
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{
		Price:    decimal.RequireFromString("149.50"),
		Quantity: 3,
	}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("448.50")))
}

func TestOrderSoldBy(t *testing.T) {
	seller := uuid.New()
	other := uuid.New()

	order := Order{
		Items: []OrderItem{
			{SellerID: seller},
			{SellerID: uuid.New()},
		},
	}

	assert.True(t, order.SoldBy(seller))
	assert.False(t, order.SoldBy(other))
}

func TestSavedAddressPrefill(t *testing.T) {
	user := User{
		FirstName: "Maria",
		LastName:  "Santos",
		Contact:   "09171234567",
		Address: JSONB{
			"house_no": "12",
			"street":   "Mabini St",
			"barangay": "San Isidro",
			"city":     "Quezon City",
			"province": "Metro Manila",
			"zip_code": "1100",
		},
	}

	prefill := user.SavedAddress()
	assert.Equal(t, "Maria Santos", prefill.FullName)
	assert.Equal(t, "09171234567", prefill.Phone)
	assert.Equal(t, "12, Mabini St, Brgy. San Isidro, Quezon City, Metro Manila, 1100", prefill.Address)
	assert.Equal(t, "Quezon City", prefill.City)
	assert.Equal(t, "1100", prefill.PostalCode)
}

func TestSavedAddressPartial(t *testing.T) {
	user := User{FirstName: "Juan", LastName: "Cruz"}

	prefill := user.SavedAddress()
	assert.Equal(t, "Juan Cruz", prefill.FullName)
	assert.Equal(t, "", prefill.Address)
	assert.Equal(t, "", prefill.City)
}
