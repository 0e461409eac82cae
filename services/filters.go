package services

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// filterID converts a reference id for filtering. Malformed ids become the nil
// ObjectID so the filter matches nothing instead of everything.
func filterID(id string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

type ProductFilter struct {
	Q          string
	CategoryID string
	IsActive   *bool
	MinPrice   *float64
	MaxPrice   *float64
}

func (f ProductFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["name"] = regexFilter(f.Q)
	}
	if f.CategoryID != "" {
		filter["category"] = filterID(f.CategoryID)
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["finalPrice"] = price
	}
	return filter
}

type CategoryFilter struct {
	Q        string
	IsActive *bool
}

func (f CategoryFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["name"] = regexFilter(f.Q)
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	return filter
}

type OrderFilter struct {
	Q             string
	Status        string
	PaymentStatus string
	UserID        string
	From          *time.Time
	To            *time.Time
}

func (f OrderFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["orderCode"] = regexFilter(f.Q)
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PaymentStatus != "" {
		filter["paymentStatus"] = f.PaymentStatus
	}
	if f.UserID != "" {
		filter["user"] = filterID(f.UserID)
	}
	created := bson.M{}
	if f.From != nil {
		created["$gte"] = *f.From
	}
	if f.To != nil {
		created["$lte"] = *f.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}
	return filter
}

type UserFilter struct {
	Q        string
	Role     string
	IsActive *bool
}

func (f UserFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["$or"] = bson.A{
			bson.M{"name": regexFilter(f.Q)},
			bson.M{"email": regexFilter(f.Q)},
		}
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	return filter
}

// Coupon status filter values.
const (
	CouponStatusActive   = "active"
	CouponStatusInactive = "inactive"
	CouponStatusExpired  = "expired"
)

type CouponFilter struct {
	Q      string
	Status string
	Type   string
	// Now anchors the validity window; zero means time.Now().
	Now time.Time
}

func (f CouponFilter) BSON() bson.M {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["code"] = regexFilter(f.Q)
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	switch f.Status {
	case CouponStatusActive:
		filter["isActive"] = true
		filter["startDate"] = bson.M{"$lte": now}
		filter["expiryDate"] = bson.M{"$gt": now}
	case CouponStatusInactive:
		filter["isActive"] = false
	case CouponStatusExpired:
		filter["expiryDate"] = bson.M{"$lte": now}
	}
	return filter
}

type CommentFilter struct {
	Q         string
	ProductID string
	UserID    string
	IsHidden  *bool
}

func (f CommentFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["content"] = regexFilter(f.Q)
	}
	if f.ProductID != "" {
		filter["product"] = filterID(f.ProductID)
	}
	if f.UserID != "" {
		filter["user"] = filterID(f.UserID)
	}
	if f.IsHidden != nil {
		filter["isHidden"] = *f.IsHidden
	}
	return filter
}

type NotificationFilter struct {
	UserID string
	IsRead *bool
	Type   string
}

func (f NotificationFilter) BSON() bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user"] = filterID(f.UserID)
	}
	if f.IsRead != nil {
		filter["isRead"] = *f.IsRead
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return filter
}

type FAQFilter struct {
	Q          string
	CategoryID string
	IsActive   *bool
}

func (f FAQFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["question"] = regexFilter(f.Q)
	}
	if f.CategoryID != "" {
		filter["category"] = filterID(f.CategoryID)
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	return filter
}

type SubscriberFilter struct {
	Q        string
	IsActive *bool
}

func (f SubscriberFilter) BSON() bson.M {
	filter := bson.M{}
	if strings.TrimSpace(f.Q) != "" {
		filter["email"] = regexFilter(f.Q)
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	return filter
}
