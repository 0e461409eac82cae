package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserDeleteCascades(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("owned documents", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		for range cascadeCollections {
			mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 5}))

		require.NoError(mt, svc.Delete(context.Background(), id.Hex()))

		cmd := nextCommand(mt, "delete")
		assert.Equal(mt, "users", cmd.Lookup("delete").StringValue())
		assert.Equal(mt, id, cmd.Lookup("deletes", "0", "q", "_id").ObjectID())

		for _, name := range []string{"orders", "comments", "notifications", "subscribers"} {
			cmd := nextCommand(mt, "delete")
			assert.Equal(mt, name, cmd.Lookup("delete").StringValue())
			assert.Equal(mt, id, cmd.Lookup("deletes", "0", "q", "user").ObjectID(), name)
			assert.Equal(mt, int64(0), cmd.Lookup("deletes", "0", "limit").AsInt64(), name)
		}

		cmd = nextCommand(mt, "delete")
		assert.Equal(mt, "chats", cmd.Lookup("delete").StringValue())
		assert.Equal(mt, id.Hex(), cmd.Lookup("deletes", "0", "q", "userId").StringValue())
	})

	mt.Run("missing user touches nothing else", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)

		nextCommand(mt, "delete")
		assert.Nil(mt, mt.GetStartedEvent())
	})
}
