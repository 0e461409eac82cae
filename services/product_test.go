package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storeadmin-backend/models"
)

func productDoc(id primitive.ObjectID, price, discount float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Linen Shirt"},
		{Key: "slug", Value: "linen-shirt"},
		{Key: "price", Value: price},
		{Key: "discount", Value: discount},
		{Key: "finalPrice", Value: models.ComputeFinalPrice(price, discount)},
		{Key: "stock", Value: 4},
		{Key: "isActive", Value: true},
	}
}

func TestProductUpdateStoresComputedFinalPrice(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("discount only", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(id, 33.33, 0)),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, 33.33, 7)}),
		)

		price, discount := 33.33, 7.0
		p, err := svc.Update(context.Background(), id.Hex(), models.ProductUpdateRequest{Discount: &discount})
		require.NoError(mt, err)
		assert.Equal(mt, price-price*discount/100, p.FinalPrice)

		nextCommand(mt, "find")
		cmd := nextCommand(mt, "findAndModify")
		assert.Equal(mt, 33.33, cmd.Lookup("query", "price").Double())
		assert.Equal(mt, 0.0, cmd.Lookup("query", "discount").Double())
		assert.Equal(mt, 7.0, cmd.Lookup("update", "$set", "discount").Double())
		assert.Equal(mt, models.ComputeFinalPrice(33.33, 7), cmd.Lookup("update", "$set", "finalPrice").Double())
	})

	mt.Run("price and discount", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(id, 100, 10)),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, 19.99, 33)}),
		)

		price, discount := 19.99, 33.0
		_, err := svc.Update(context.Background(), id.Hex(), models.ProductUpdateRequest{Price: &price, Discount: &discount})
		require.NoError(mt, err)

		nextCommand(mt, "find")
		cmd := nextCommand(mt, "findAndModify")
		assert.Equal(mt, price-price*discount/100, cmd.Lookup("update", "$set", "finalPrice").Double())
	})

	mt.Run("retries when price moved", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(id, 50, 0)),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(id, 80, 0)),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, 80, 25)}),
		)

		discount := 25.0
		p, err := svc.Update(context.Background(), id.Hex(), models.ProductUpdateRequest{Discount: &discount})
		require.NoError(mt, err)
		assert.Equal(mt, 60.0, p.FinalPrice)

		nextCommand(mt, "find")
		nextCommand(mt, "findAndModify")
		nextCommand(mt, "find")
		cmd := nextCommand(mt, "findAndModify")
		assert.Equal(mt, 80.0, cmd.Lookup("query", "price").Double())
		assert.Equal(mt, 60.0, cmd.Lookup("update", "$set", "finalPrice").Double())
	})

	mt.Run("gives up after repeated races", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		id := primitive.NewObjectID()
		for i := 0; i < repriceAttempts; i++ {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch, productDoc(id, 50, 0)),
				mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			)
		}
		discount := 5.0
		_, err := svc.Update(context.Background(), id.Hex(), models.ProductUpdateRequest{Discount: &discount})
		assert.ErrorIs(mt, err, ErrConflict)
	})

	mt.Run("missing product", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch))

		stock := 3
		_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.ProductUpdateRequest{Stock: &stock})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestPaginateCountsWithTheSameFilter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("page 3", func(mt *mtest.T) {
		svc := NewProductService(mt.DB)
		active := true
		floor := 10.0
		f := ProductFilter{Q: "shirt", IsActive: &active, MinPrice: &floor}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.products", mtest.FirstBatch,
				productDoc(primitive.NewObjectID(), 20, 0),
				productDoc(primitive.NewObjectID(), 30, 0),
			),
			countResponse("test.products", 12),
		)

		page, err := svc.List(context.Background(), f, NewPagination(3, 5))
		require.NoError(mt, err)
		assert.LessOrEqual(mt, int64(len(page.Items)), page.Limit)
		assert.Equal(mt, int64(12), page.Total)
		assert.Equal(mt, int64(3), page.Page)

		find := nextCommand(mt, "find")
		assert.Equal(mt, int64(10), find.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(5), find.Lookup("limit").AsInt64())

		count := nextCommand(mt, "aggregate")
		assert.Equal(mt,
			docAsMap(mt, find.Lookup("filter").Document()),
			docAsMap(mt, count.Lookup("pipeline", "0", "$match").Document()),
		)
	})
}
