package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storeadmin-backend/models"
)

func TestOrderCreateReleasesCouponWhenInsertFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("duplicate order", func(mt *mtest.T) {
		coupons := NewCouponService(mt.DB, nil, nil, "Test Store", quietLog())
		svc := NewOrderService(mt.DB, coupons, nil, quietLog())
		userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(
			countResponse("test.users", 1),
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(productID, 100, 0)),
			mtest.CreateCursorResponse(0, "test.coupons", mtest.FirstBatch, couponDoc(primitive.NewObjectID(), true)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		_, err := svc.Create(context.Background(), models.CreateOrderRequest{
			UserID:     userID.Hex(),
			Items:      []models.OrderItemRequest{{ProductID: productID.Hex(), Quantity: 1}},
			CouponCode: "sale10",
		}, "admin")
		assert.ErrorIs(mt, err, ErrConflict)

		nextCommand(mt, "aggregate")
		nextCommand(mt, "find")
		nextCommand(mt, "find")
		redeem := nextCommand(mt, "update")
		assert.Equal(mt, int64(1), redeem.Lookup("updates", "0", "u", "$inc", "usedCount").AsInt64())
		nextCommand(mt, "insert")
		release := nextCommand(mt, "update")
		assert.Equal(mt, "SALE10", release.Lookup("updates", "0", "q", "code").StringValue())
		assert.Equal(mt, int64(-1), release.Lookup("updates", "0", "u", "$inc", "usedCount").AsInt64())
	})
}

func TestOrderCreateLogsStockRace(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("stock gone", func(mt *mtest.T) {
		logger, hook := logtest.NewNullLogger()
		svc := NewOrderService(mt.DB, nil, nil, logrus.NewEntry(logger))
		userID, productID := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(
			countResponse("test.users", 1),
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(productID, 100, 0)),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		order, err := svc.Create(context.Background(), models.CreateOrderRequest{
			UserID: userID.Hex(),
			Items:  []models.OrderItemRequest{{ProductID: productID.Hex(), Quantity: 2}},
		}, "admin")
		require.NoError(mt, err)
		assert.Equal(mt, 200.0, order.TotalPrice)

		entry := hook.LastEntry()
		require.NotNil(mt, entry)
		assert.Equal(mt, logrus.WarnLevel, entry.Level)
		assert.Equal(mt, productID.Hex(), entry.Data["product"])
		assert.Equal(mt, 2, entry.Data["quantity"])
	})
}
