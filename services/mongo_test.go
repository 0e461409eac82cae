package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storeadmin-backend/models"
)

func countResponse(ns string, n int64) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func TestGetNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("missing document", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch))

		_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		_, err := svc.Get(context.Background(), "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestCategoryDeleteRefusedWhenReferenced(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("referenced", func(mt *mtest.T) {
		svc := NewCategoryService(mt.DB)
		mt.AddMockResponses(countResponse("test.products", 3))

		err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrConflict)
	})

	mt.Run("unreferenced", func(mt *mtest.T) {
		svc := NewCategoryService(mt.DB)
		mt.AddMockResponses(
			countResponse("test.products", 0),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)
		require.NoError(mt, svc.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})
}

func TestToggleReturnsUpdatedDocument(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("toggle", func(mt *mtest.T) {
		svc := NewCommentService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "content", Value: "nice"},
			{Key: "isHidden", Value: true},
		}}))

		c, err := svc.ToggleHidden(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.True(mt, c.IsHidden)
		assert.Equal(mt, id, c.ID)
	})

	mt.Run("missing", func(mt *mtest.T) {
		svc := NewCommentService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := svc.ToggleHidden(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestOrderUpdateStatusNotifiesOwner(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("notify", func(mt *mtest.T) {
		notifier := &fakeNotifier{}
		notifications := NewNotificationService(mt.DB, notifier)
		svc := NewOrderService(mt.DB, nil, notifications, quietLog())

		orderID := primitive.NewObjectID()
		userID := primitive.NewObjectID()
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: orderID},
				{Key: "orderCode", Value: "ORD-1"},
				{Key: "user", Value: userID},
				{Key: "status", Value: "shipping"},
				{Key: "statusHistory", Value: bson.A{
					bson.D{{Key: "status", Value: "new"}, {Key: "timestamp", Value: now}},
					bson.D{{Key: "status", Value: "shipping"}, {Key: "timestamp", Value: now}},
				}},
			}}),
			mtest.CreateSuccessResponse(),
		)

		order, err := svc.UpdateStatus(context.Background(), orderID.Hex(), models.OrderShipping, "on the way", "admin")
		require.NoError(mt, err)
		assert.Equal(mt, models.OrderShipping, order.Status)
		assert.Equal(mt, order.Status, order.StatusHistory[len(order.StatusHistory)-1].Status)

		sent := notifier.calls[userID.Hex()]
		require.Len(mt, sent, 1)
		assert.Equal(mt, models.NotificationOrderStatus, sent[0].Type)
		assert.Equal(mt, orderID.Hex(), sent[0].Reference)
	})

	mt.Run("unknown status", func(mt *mtest.T) {
		svc := NewOrderService(mt.DB, nil, nil, quietLog())
		_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "lost", "", "admin")
		assert.ErrorIs(mt, err, ErrInvalid)
	})
}

func TestOrderStats(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("stats", func(mt *mtest.T) {
		svc := NewOrderService(mt.DB, nil, nil, quietLog())
		mt.AddMockResponses(
			countResponse("test.products", 12),
			countResponse("test.users", 4),
			mtest.CreateCursorResponse(0, "test.orders", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "completed"}, {Key: "count", Value: int64(2)}, {Key: "revenue", Value: 250.5}},
				bson.D{{Key: "_id", Value: "new"}, {Key: "count", Value: int64(3)}, {Key: "revenue", Value: 90.0}},
			),
		)

		stats, err := svc.Stats(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), stats.TotalProducts)
		assert.Equal(mt, int64(4), stats.TotalUsers)
		assert.Equal(mt, int64(5), stats.TotalOrders)
		assert.InDelta(mt, 250.5, stats.Revenue, 1e-9)
		assert.Equal(mt, int64(3), stats.OrdersByStatus["new"])
	})
}

func TestSettingGetReturnsStoredDocument(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("get", func(mt *mtest.T) {
		svc := NewSettingService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "key", Value: models.GlobalSettingKey},
			{Key: "general", Value: bson.D{{Key: "storeName", Value: "My Store"}, {Key: "currency", Value: "VND"}}},
		}}))

		s, err := svc.Get(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, "My Store", s.General.StoreName)
	})
}
