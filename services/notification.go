package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storeadmin-backend/models"
)

// Notifier pushes a stored notification to the owner's live connections.
type Notifier interface {
	NotifyUser(userID string, n *models.Notification)
}

// NotificationService stores user notifications and pushes them live.
type NotificationService struct {
	notifications *mongo.Collection
	notifier      Notifier
	now           func() time.Time
}

func NewNotificationService(db *mongo.Database, notifier Notifier) *NotificationService {
	return &NotificationService{
		notifications: db.Collection("notifications"),
		notifier:      notifier,
		now:           time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, f NotificationFilter, p Pagination) (*models.Page[models.Notification], error) {
	return paginate[models.Notification](ctx, s.notifications, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

func (s *NotificationService) Create(ctx context.Context, req models.NotificationRequest) (*models.Notification, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %q", ErrInvalid, req.UserID)
	}
	return s.Notify(ctx, models.Notification{
		User:      userID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		Reference: req.Reference,
	})
}

// Notify persists n and then pushes it to the owner. The push is best effort:
// an offline owner simply sees the notification on the next list.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) (*models.Notification, error) {
	n.IsRead = false
	n.CreatedAt = s.now()

	res, err := s.notifications.InsertOne(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)

	if s.notifier != nil {
		s.notifier.NotifyUser(n.User.Hex(), &n)
	}
	return &n, nil
}

// ToggleRead flips the read flag. A non-empty owner limits the match to that
// user's notifications; others report ErrNotFound.
func (s *NotificationService) ToggleRead(ctx context.Context, id, owner string) (*models.Notification, error) {
	filter, err := ownedBy(id, owner)
	if err != nil {
		return nil, err
	}
	return toggleWhere[models.Notification](ctx, s.notifications, filter, "isRead", "notification")
}

func (s *NotificationService) MarkRead(ctx context.Context, id, owner string) (*models.Notification, error) {
	filter, err := ownedBy(id, owner)
	if err != nil {
		return nil, err
	}
	return updateWhere[models.Notification](ctx, s.notifications, filter, bson.M{"isRead": true}, "notification")
}

// ownedBy matches notification id, restricted to owner unless owner is empty.
func ownedBy(id, owner string) (bson.M, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": oid}
	if owner != "" {
		uid, err := parseID(owner)
		if err != nil {
			return nil, err
		}
		filter["user"] = uid
	}
	return filter, nil
}

// MarkAllRead marks every unread notification of the user as read and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	oid, err := parseID(userID)
	if err != nil {
		return 0, err
	}
	res, err := s.notifications.UpdateMany(ctx,
		bson.M{"user": oid, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	oid, err := parseID(userID)
	if err != nil {
		return 0, err
	}
	return s.notifications.CountDocuments(ctx, bson.M{"user": oid, "isRead": false})
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.notifications, id, "notification")
}
