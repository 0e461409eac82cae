package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storeadmin-backend/models"
)

// CommentService moderates product comments.
type CommentService struct {
	comments *mongo.Collection
	now      func() time.Time
}

func NewCommentService(db *mongo.Database) *CommentService {
	return &CommentService{comments: db.Collection("comments"), now: time.Now}
}

func (s *CommentService) List(ctx context.Context, f CommentFilter, p Pagination) (*models.Page[models.Comment], error) {
	return paginate[models.Comment](ctx, s.comments, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

func (s *CommentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	return findByID[models.Comment](ctx, s.comments, id, "comment")
}

func (s *CommentService) ToggleHidden(ctx context.Context, id string) (*models.Comment, error) {
	return toggleField[models.Comment](ctx, s.comments, id, "isHidden", "comment")
}

// Reply sets the admin reply, replacing any earlier one.
func (s *CommentService) Reply(ctx context.Context, id, content string) (*models.Comment, error) {
	now := s.now()
	return updateByID[models.Comment](ctx, s.comments, id, bson.M{
		"reply":     models.CommentReply{Content: content, RepliedAt: now},
		"updatedAt": now,
	}, "comment")
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.comments, id, "comment")
}
