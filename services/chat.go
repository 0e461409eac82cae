package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeadmin-backend/models"
)

// ChatService persists support chat messages. Conversations are keyed by the
// opaque user id the client joined with.
type ChatService struct {
	chats *mongo.Collection
	now   func() time.Time
}

func NewChatService(db *mongo.Database) *ChatService {
	return &ChatService{chats: db.Collection("chats"), now: time.Now}
}

// Save stores one message and returns it with id and timestamp filled.
func (s *ChatService) Save(ctx context.Context, userID, message string, sender models.ChatSender) (*models.ChatMessage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalid)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: empty message", ErrInvalid)
	}
	msg := models.ChatMessage{
		UserID:    userID,
		Message:   message,
		Sender:    sender,
		IsRead:    sender != models.SenderUser,
		CreatedAt: s.now(),
	}
	res, err := s.chats.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return &msg, nil
}

// History returns the conversation oldest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findAll[models.ChatMessage](ctx, s.chats, bson.M{"userId": userID}, opts)
}

// ActiveConversations summarises every conversation, most recent first.
func (s *ChatService) ActiveConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	unread := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$and", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$sender", models.SenderUser}}},
			bson.D{{Key: "$eq", Value: bson.A{"$isRead", false}}},
		}}},
		1, 0,
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$userId"},
			{Key: "lastMessage", Value: bson.D{{Key: "$last", Value: "$message"}}},
			{Key: "lastSender", Value: bson.D{{Key: "$last", Value: "$sender"}}},
			{Key: "lastMessageAt", Value: bson.D{{Key: "$last", Value: "$createdAt"}}},
			{Key: "unreadCount", Value: bson.D{{Key: "$sum", Value: unread}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessageAt", Value: -1}}}},
	}
	cursor, err := s.chats.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]models.ConversationSummary, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marks the user's unread messages as read by an admin.
func (s *ChatService) MarkRead(ctx context.Context, userID string) (int64, error) {
	res, err := s.chats.UpdateMany(ctx,
		bson.M{"userId": userID, "sender": models.SenderUser, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *ChatService) DeleteConversation(ctx context.Context, userID string) (int64, error) {
	res, err := s.chats.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
