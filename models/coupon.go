package models

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CouponType adalah jenis potongan kupon.
type CouponType string

const (
	CouponFixed      CouponType = "fixed"
	CouponPercentage CouponType = "percentage"
)

var (
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponNotStarted  = errors.New("coupon is not valid yet")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrOrderBelowMinimum = errors.New("order value is below the coupon minimum")
)

// Coupon mendefinisikan struktur untuk kupon diskon.
type Coupon struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code          string             `json:"code" bson:"code"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Type          CouponType         `json:"type" bson:"type"`
	Value         float64            `json:"value" bson:"value"`
	MinOrderValue float64            `json:"minOrderValue" bson:"minOrderValue"`
	MaxDiscount   *float64           `json:"maxDiscount,omitempty" bson:"maxDiscount,omitempty"`
	MaxUses       *int               `json:"maxUses,omitempty" bson:"maxUses,omitempty"`
	UsedCount     int                `json:"usedCount" bson:"usedCount"`
	StartDate     time.Time          `json:"startDate" bson:"startDate"`
	ExpiryDate    time.Time          `json:"expiryDate" bson:"expiryDate"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	Source        string             `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Usable memeriksa status aktif, jendela berlaku, dan batas pemakaian.
func (c *Coupon) Usable(now time.Time) error {
	switch {
	case !c.IsActive:
		return ErrCouponInactive
	case now.Before(c.StartDate):
		return ErrCouponNotStarted
	case !now.Before(c.ExpiryDate):
		return ErrCouponExpired
	case c.MaxUses != nil && c.UsedCount >= *c.MaxUses:
		return ErrCouponExhausted
	}
	return nil
}

// Discount menghitung potongan untuk nilai pesanan. Potongan tidak pernah
// melebihi nilai pesanan maupun MaxDiscount.
func (c *Coupon) Discount(orderValue float64, now time.Time) (float64, error) {
	if err := c.Usable(now); err != nil {
		return 0, err
	}
	if orderValue < c.MinOrderValue {
		return 0, ErrOrderBelowMinimum
	}

	var amount float64
	switch c.Type {
	case CouponPercentage:
		amount, _ = decimal.NewFromFloat(orderValue).
			Mul(decimal.NewFromFloat(c.Value)).
			Div(decimal.NewFromInt(100)).
			Float64()
	default:
		amount = c.Value
	}
	if c.MaxDiscount != nil {
		amount = math.Min(amount, *c.MaxDiscount)
	}
	return math.Max(0, math.Min(amount, orderValue)), nil
}

// CouponRequest mendefinisikan struktur untuk pembuatan kupon.
// Tanggal diterima sebagai RFC3339 atau YYYY-MM-DD.
type CouponRequest struct {
	Code          string     `json:"code" binding:"required,min=3,max=32"`
	Description   string     `json:"description"`
	Type          CouponType `json:"type" binding:"required,oneof=fixed percentage"`
	Value         float64    `json:"value" binding:"gt=0"`
	MinOrderValue float64    `json:"minOrderValue" binding:"gte=0"`
	MaxDiscount   *float64   `json:"maxDiscount" binding:"omitempty,gt=0"`
	MaxUses       *int       `json:"maxUses" binding:"omitempty,gt=0"`
	StartDate     string     `json:"startDate"`
	ExpiryDate    string     `json:"expiryDate" binding:"required"`
	IsActive      *bool      `json:"isActive"`
	Source        string     `json:"source"`
}

// CouponUpdateRequest mendefinisikan field kupon yang boleh diubah.
type CouponUpdateRequest struct {
	Description   *string     `json:"description"`
	Type          *CouponType `json:"type" binding:"omitempty,oneof=fixed percentage"`
	Value         *float64    `json:"value" binding:"omitempty,gt=0"`
	MinOrderValue *float64    `json:"minOrderValue" binding:"omitempty,gte=0"`
	MaxDiscount   *float64    `json:"maxDiscount" binding:"omitempty,gt=0"`
	MaxUses       *int        `json:"maxUses" binding:"omitempty,gt=0"`
	StartDate     *string     `json:"startDate"`
	ExpiryDate    *string     `json:"expiryDate"`
	IsActive      *bool       `json:"isActive"`
	Source        *string     `json:"source"`
	// Unset menghapus batas opsional, misalnya ["maxUses"].
	Unset []string `json:"unset" binding:"omitempty,dive,oneof=maxDiscount maxUses"`
}

// Clears melaporkan apakah field opsional diminta untuk dihapus.
func (r CouponUpdateRequest) Clears(field string) bool {
	for _, f := range r.Unset {
		if f == field {
			return true
		}
	}
	return false
}

// ValidateCouponRequest mendefinisikan struktur untuk pengecekan kupon.
type ValidateCouponRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderValue float64 `json:"orderValue" binding:"gte=0"`
}

// SendCouponRequest menentukan penerima email promosi; kosong berarti semua pelanggan aktif.
type SendCouponRequest struct {
	Emails []string `json:"emails" binding:"omitempty,dive,email"`
}

// Subscriber adalah pelanggan buletin promosi.
type Subscriber struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Email     string              `json:"email" bson:"email"`
	User      *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
	IsActive  bool                `json:"isActive" bson:"isActive"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

// SubscribeRequest mendefinisikan struktur untuk pendaftaran buletin.
type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email"`
	UserID string `json:"userId" binding:"omitempty,objectid"`
}
