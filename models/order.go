package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus adalah status pesanan.
type OrderStatus string

const (
	OrderNew             OrderStatus = "new"
	OrderConfirmed       OrderStatus = "confirmed"
	OrderPreparing       OrderStatus = "preparing"
	OrderShipping        OrderStatus = "shipping"
	OrderCompleted       OrderStatus = "completed"
	OrderCancelled       OrderStatus = "cancelled"
	OrderCancelRequested OrderStatus = "cancel_requested"
)

// OrderStatuses lists every known order status.
var OrderStatuses = []OrderStatus{
	OrderNew, OrderConfirmed, OrderPreparing, OrderShipping,
	OrderCompleted, OrderCancelled, OrderCancelRequested,
}

// Valid melaporkan apakah status dikenal.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentStatus adalah status pembayaran pesanan.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// OrderItem adalah satu baris pesanan. Price adalah harga saat pesanan dibuat.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Price    float64            `json:"price" bson:"price"`
}

// StatusEntry adalah satu catatan riwayat status.
type StatusEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Note      string      `json:"note,omitempty" bson:"note,omitempty"`
	UpdatedBy string      `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

// Order mendefinisikan struktur untuk pesanan.
type Order struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	OrderCode     string              `json:"orderCode" bson:"orderCode"`
	User          primitive.ObjectID  `json:"user" bson:"user"`
	Items         []OrderItem         `json:"items" bson:"items"`
	TotalPrice    float64             `json:"totalPrice" bson:"totalPrice"`
	ShippingFee   float64             `json:"shippingFee" bson:"shippingFee"`
	Discount      float64             `json:"discount" bson:"discount"`
	CouponCode    string              `json:"couponCode,omitempty" bson:"couponCode,omitempty"`
	Status        OrderStatus         `json:"status" bson:"status"`
	StatusHistory []StatusEntry       `json:"statusHistory" bson:"statusHistory"`
	PaymentStatus PaymentStatus       `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod string              `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	Address       *primitive.ObjectID `json:"address,omitempty" bson:"address,omitempty"`
	Note          string              `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Subtotal menjumlahkan harga snapshot semua baris.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// ApplyStatus menambahkan entri riwayat dan menjadikannya status terkini.
// Riwayat hanya pernah ditambah, tidak pernah ditulis ulang.
func (o *Order) ApplyStatus(status OrderStatus, note, actor string, at time.Time) StatusEntry {
	entry := StatusEntry{Status: status, Note: note, UpdatedBy: actor, Timestamp: at}
	o.StatusHistory = append(o.StatusHistory, entry)
	o.Status = status
	o.UpdatedAt = at
	return entry
}

// OrderItemRequest adalah satu baris pada permintaan pembuatan pesanan.
type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required,objectid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest mendefinisikan struktur untuk pembuatan pesanan.
type CreateOrderRequest struct {
	UserID        string             `json:"userId" binding:"required,objectid"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingFee   float64            `json:"shippingFee" binding:"gte=0"`
	CouponCode    string             `json:"couponCode"`
	PaymentMethod string             `json:"paymentMethod"`
	AddressID     string             `json:"addressId" binding:"omitempty,objectid"`
	Note          string             `json:"note"`
}

// UpdateOrderStatusRequest mendefinisikan struktur untuk perubahan status pesanan.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=new confirmed preparing shipping completed cancelled cancel_requested"`
	Note   string      `json:"note"`
}

// UpdatePaymentRequest mendefinisikan struktur untuk perubahan status pembayaran.
type UpdatePaymentRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" binding:"required,oneof=pending paid refunded failed"`
	PaymentMethod string        `json:"paymentMethod"`
}

// Stats mendefinisikan struktur untuk statistik dasbor.
type Stats struct {
	TotalProducts  int64            `json:"totalProducts"`
	TotalUsers     int64            `json:"totalUsers"`
	TotalOrders    int64            `json:"totalOrders"`
	Revenue        float64          `json:"revenue"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
}
