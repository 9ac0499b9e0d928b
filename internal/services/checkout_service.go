// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

// CheckoutService turns a selection of cart lines into an order. The whole
// workflow runs in one transaction: re-check stock per line, decrement it,
// create the order snapshot, clear the purchased cart lines. Any failure
// rolls everything back, so stock is never decremented for an order that was
// not created.
type CheckoutService struct {
	store         store.Store
	users         *UserService
	notifications *NotificationService
	events        *Aggregator
	now           func() time.Time
}

type CheckoutItem struct {
	CartItemID uuid.UUID `json:"cart_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
}

type DeliveryRequest struct {
	FullName   string `json:"full_name" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"required,ph_mobile"`
	Address    string `json:"address" validate:"required,max=512"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Notes      string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type PaymentRequest struct {
	Method      models.PaymentMethod `json:"method" validate:"required"`
	GcashNumber string               `json:"gcash_number,omitempty"`
	CardNumber  string               `json:"card_number,omitempty"`
	CardName    string               `json:"card_name,omitempty"`
	CardExpiry  string               `json:"card_expiry,omitempty"`
	CardCVC     string               `json:"card_cvc,omitempty"`
}

type CheckoutRequest struct {
	Items    []CheckoutItem  `json:"items" validate:"required,min=1,dive"`
	Delivery DeliveryRequest `json:"delivery" validate:"required"`
	Payment  PaymentRequest  `json:"payment" validate:"required"`
}

func NewCheckoutService(st store.Store, users *UserService, notifications *NotificationService, events *Aggregator) *CheckoutService {
	return &CheckoutService{
		store:         st,
		users:         users,
		notifications: notifications,
		events:        events,
		now:           time.Now,
	}
}

// Validate checks the payment detail requirements per method: a GCash wallet
// number is exactly 11 digits, a card needs all four fields with at least 16
// digits in the number. Cash on delivery needs nothing.
func (p *PaymentRequest) Validate() error {
	switch p.Method {
	case models.PaymentMethodCOD:
		return nil
	case models.PaymentMethodGcash:
		if len(p.GcashNumber) != 11 || utils.DigitCount(p.GcashNumber) != 11 {
			return fmt.Errorf("%w: gcash number must be exactly 11 digits", models.ErrValidationFailed)
		}
		return nil
	case models.PaymentMethodCard:
		if p.CardNumber == "" || p.CardName == "" || p.CardExpiry == "" || p.CardCVC == "" {
			return fmt.Errorf("%w: all card fields are required", models.ErrValidationFailed)
		}
		if utils.DigitCount(p.CardNumber) < 16 {
			return fmt.Errorf("%w: card number must have at least 16 digits", models.ErrValidationFailed)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown payment method %q", models.ErrValidationFailed, p.Method)
	}
}

// Summary reduces the payment details to what is safe to persist: the wallet
// number for gcash, last-4 and holder name for card.
func (p *PaymentRequest) Summary() models.PaymentSummary {
	switch p.Method {
	case models.PaymentMethodGcash:
		return models.PaymentSummary{GcashNumber: utils.StripNonDigits(p.GcashNumber)}
	case models.PaymentMethodCard:
		digits := utils.StripNonDigits(p.CardNumber)
		last4 := digits
		if len(digits) > 4 {
			last4 = digits[len(digits)-4:]
		}
		return models.PaymentSummary{CardLast4: last4, CardName: p.CardName}
	default:
		return models.PaymentSummary{}
	}
}

func (s *CheckoutService) Checkout(buyerID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if buyerID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}
	if len(req.Items) == 0 {
		return nil, models.ErrEmptySelection
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}
	if err := req.Payment.Validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		BuyerID: buyerID,
		DeliveryDetails: models.DeliveryDetails{
			FullName:   req.Delivery.FullName,
			Phone:      req.Delivery.Phone,
			Address:    req.Delivery.Address,
			City:       req.Delivery.City,
			PostalCode: req.Delivery.PostalCode,
			Notes:      req.Delivery.Notes,
		},
		PaymentMethod:  req.Payment.Method,
		PaymentDetails: req.Payment.Summary(),
		Status:         models.OrderStatusPending,
	}

	err := s.store.Transact(func(tx store.Store) error {
		total := decimal.Zero
		cartIDs := make([]uuid.UUID, 0, len(req.Items))

		for _, sel := range req.Items {
			line, err := tx.Carts().Get(buyerID, sel.CartItemID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					return fmt.Errorf("cart item %s: %w", sel.CartItemID, models.ErrNotFound)
				}
				return err
			}

			product, err := tx.Products().Get(line.ProductID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					return fmt.Errorf("%q: %w", line.Name, models.ErrProductUnavailable)
				}
				return err
			}

			if product.Stock < sel.Quantity {
				return fmt.Errorf("%q: %w", product.Name, models.ErrInsufficientStock)
			}

			if err := tx.Products().DecrementStock(product.ID, sel.Quantity); err != nil {
				if errors.Is(err, models.ErrInsufficientStock) {
					return fmt.Errorf("%q: %w", product.Name, models.ErrInsufficientStock)
				}
				if errors.Is(err, models.ErrNotFound) {
					return fmt.Errorf("%q: %w", line.Name, models.ErrProductUnavailable)
				}
				return err
			}

			item := models.OrderItem{
				ProductID: product.ID,
				SellerID:  product.SellerID,
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  sel.Quantity,
				ImageURL:  line.ImageURL,
			}
			order.Items = append(order.Items, item)
			total = total.Add(item.LineTotal())
			cartIDs = append(cartIDs, line.ID)
		}

		order.Total = total
		if err := tx.Orders().Create(order); err != nil {
			return err
		}

		return tx.Carts().DeleteBatch(buyerID, cartIDs)
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(OrderEvent{
			Type:  OrderEventPlaced,
			Order: *order,
			At:    order.CreatedAt,
		})
	}

	go s.notifyOrderPlaced(order)

	return order, nil
}

// notifyOrderPlaced mails the buyer a confirmation and every involved seller
// a sale notice. Failures are logged, never surfaced to the buyer.
func (s *CheckoutService) notifyOrderPlaced(order *models.Order) {
	if s.users == nil || s.notifications == nil {
		return
	}

	buyer, err := s.users.GetProfile(order.BuyerID)
	if err != nil {
		logrus.WithError(err).Error("failed to load buyer for order confirmation")
	} else if err := s.notifications.SendOrderConfirmation(buyer, order); err != nil {
		logrus.WithError(err).Error("failed to send order confirmation")
	}

	bySeller := make(map[uuid.UUID][]models.OrderItem)
	for _, item := range order.Items {
		bySeller[item.SellerID] = append(bySeller[item.SellerID], item)
	}

	for sellerID, items := range bySeller {
		seller, err := s.users.GetProfile(sellerID)
		if err != nil {
			logrus.WithError(err).Error("failed to load seller for sale notice")
			continue
		}
		if err := s.notifications.SendSaleNotice(seller, order, items); err != nil {
			logrus.WithError(err).Error("failed to send sale notice")
		}
	}
}
