package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductFilter(t *testing.T) {
	active := true
	min, max := 100.0, 500.0
	cat := primitive.NewObjectID()

	f := ProductFilter{Q: "shirt", CategoryID: cat.Hex(), IsActive: &active, MinPrice: &min, MaxPrice: &max}.BSON()
	assert.Equal(t, cat, f["category"])
	assert.Equal(t, true, f["isActive"])
	assert.Equal(t, bson.M{"$gte": 100.0, "$lte": 500.0}, f["finalPrice"])
	assert.Contains(t, f, "name")

	assert.Empty(t, ProductFilter{}.BSON())
}

func TestFilterIDMalformedMatchesNothing(t *testing.T) {
	f := ProductFilter{CategoryID: "not-an-id"}.BSON()
	assert.Equal(t, primitive.NilObjectID, f["category"])
}

func TestOrderFilterDateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	f := OrderFilter{Status: "new", From: &from, To: &to}.BSON()
	assert.Equal(t, "new", f["status"])
	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, f["createdAt"])

	f = OrderFilter{From: &from}.BSON()
	assert.Equal(t, bson.M{"$gte": from}, f["createdAt"])
}

func TestUserFilterSearchesNameAndEmail(t *testing.T) {
	f := UserFilter{Q: "ann", Role: "admin"}.BSON()
	or, ok := f["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, "admin", f["role"])
}

func TestCouponFilterStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	active := CouponFilter{Status: CouponStatusActive, Now: now}.BSON()
	assert.Equal(t, true, active["isActive"])
	assert.Equal(t, bson.M{"$lte": now}, active["startDate"])
	assert.Equal(t, bson.M{"$gt": now}, active["expiryDate"])

	inactive := CouponFilter{Status: CouponStatusInactive, Now: now}.BSON()
	assert.Equal(t, false, inactive["isActive"])
	assert.NotContains(t, inactive, "expiryDate")

	expired := CouponFilter{Status: CouponStatusExpired, Now: now}.BSON()
	assert.Equal(t, bson.M{"$lte": now}, expired["expiryDate"])
	assert.NotContains(t, expired, "isActive")
}

func TestNotificationFilter(t *testing.T) {
	read := false
	uid := primitive.NewObjectID()
	f := NotificationFilter{UserID: uid.Hex(), IsRead: &read, Type: "promotion"}.BSON()
	assert.Equal(t, bson.M{"user": uid, "isRead": false, "type": "promotion"}, f)
}
