// internal/store/gorm.go
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greeniecart/greeniecart-backend/internal/models"
)

// GormStore is the Postgres-backed store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Products() ProductStore { return &gormProducts{db: s.db} }
func (s *GormStore) Carts() CartStore       { return &gormCarts{db: s.db} }
func (s *GormStore) Orders() OrderStore     { return &gormOrders{db: s.db} }

func (s *GormStore) Transact(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Products

type gormProducts struct {
	db *gorm.DB
}

func (p *gormProducts) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := p.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (p *gormProducts) DecrementStock(id uuid.UUID, qty int) error {
	res := p.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return fmt.Errorf("database error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a vanished product from an exhausted one.
		var count int64
		if err := p.db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return models.ErrNotFound
		}
		return models.ErrInsufficientStock
	}
	return nil
}

// Carts

type gormCarts struct {
	db *gorm.DB
}

func (c *gormCarts) List(buyerID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.db.Where("buyer_id = ?", buyerID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return items, nil
}

func (c *gormCarts) Get(buyerID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.db.Where("id = ? AND buyer_id = ?", itemID, buyerID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &item, nil
}

func (c *gormCarts) FindByProduct(buyerID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := c.db.Where("buyer_id = ? AND product_id = ?", buyerID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &item, nil
}

func (c *gormCarts) Create(item *models.CartItem) error {
	if err := c.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

func (c *gormCarts) UpdateQuantity(buyerID, itemID uuid.UUID, qty int) error {
	res := c.db.Model(&models.CartItem{}).
		Where("id = ? AND buyer_id = ?", itemID, buyerID).
		Update("quantity", qty)
	if res.Error != nil {
		return fmt.Errorf("database error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (c *gormCarts) Delete(buyerID, itemID uuid.UUID) error {
	if err := c.db.Where("id = ? AND buyer_id = ?", itemID, buyerID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (c *gormCarts) DeleteBatch(buyerID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if err := c.db.Where("buyer_id = ? AND id IN ?", buyerID, itemIDs).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}

// Orders

type gormOrders struct {
	db *gorm.DB
}

func (o *gormOrders) Create(order *models.Order) error {
	if err := o.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (o *gormOrders) Get(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := o.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (o *gormOrders) ListByBuyer(buyerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := o.db.Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return orders, nil
}

func (o *gormOrders) UpdateStatus(orderID uuid.UUID, from, to models.OrderStatus, at time.Time) error {
	updates := map[string]interface{}{"status": to}
	switch to {
	case models.OrderStatusShipped:
		updates["shipped_at"] = at
	case models.OrderStatusCompleted:
		updates["completed_at"] = at
	}

	res := o.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("database error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrUpdateFailed
	}
	return nil
}

// sellerItemRow is the raw join row behind the fan-out query.
type sellerItemRow struct {
	OrderID            uuid.UUID
	BuyerID            uuid.UUID
	ProductID          uuid.UUID
	Name               string
	ImageURL           string
	Quantity           int
	Price              decimal.Decimal
	PaymentMethod      models.PaymentMethod
	Status             models.OrderStatus
	CreatedAt          time.Time
	DeliveryFullName   string
	DeliveryPhone      string
	DeliveryAddress    string
	DeliveryCity       string
	DeliveryPostalCode string
	DeliveryNotes      string
}

func (o *gormOrders) ListItemsBySeller(sellerID uuid.UUID) ([]models.SellerOrderItem, error) {
	var rows []sellerItemRow
	err := o.db.Table("order_items").
		Select(`order_items.order_id, orders.buyer_id, order_items.product_id,
			order_items.name, order_items.image_url, order_items.quantity, order_items.price,
			orders.payment_method, orders.status, orders.created_at,
			orders.delivery_full_name, orders.delivery_phone, orders.delivery_address,
			orders.delivery_city, orders.delivery_postal_code, orders.delivery_notes`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.seller_id = ?", sellerID).
		Where("orders.deleted_at IS NULL").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	items := make([]models.SellerOrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, models.SellerOrderItem{
			OrderID:       r.OrderID,
			BuyerID:       r.BuyerID,
			BuyerName:     r.DeliveryFullName,
			BuyerPhone:    r.DeliveryPhone,
			BuyerAddress:  joinAddress(r.DeliveryAddress, r.DeliveryCity, r.DeliveryPostalCode),
			BuyerNotes:    r.DeliveryNotes,
			ProductID:     r.ProductID,
			ProductName:   r.Name,
			ProductImage:  r.ImageURL,
			Quantity:      r.Quantity,
			LineTotal:     r.Price.Mul(decimal.NewFromInt(int64(r.Quantity))),
			PaymentMethod: r.PaymentMethod,
			Status:        r.Status,
			OrderedAt:     r.CreatedAt,
		})
	}
	return items, nil
}

func joinAddress(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
