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

// FAQService manages FAQ categories and their questions.
type FAQService struct {
	categories *mongo.Collection
	faqs       *mongo.Collection
	now        func() time.Time
}

func NewFAQService(db *mongo.Database) *FAQService {
	return &FAQService{
		categories: db.Collection("faq_categories"),
		faqs:       db.Collection("faqs"),
		now:        time.Now,
	}
}

var byOrder = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}}

func (s *FAQService) ListCategories(ctx context.Context, activeOnly bool) ([]models.FAQCategory, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	return findAll[models.FAQCategory](ctx, s.categories, filter, options.Find().SetSort(byOrder))
}

func (s *FAQService) CreateCategory(ctx context.Context, req models.FAQCategoryRequest) (*models.FAQCategory, error) {
	now := s.now()
	cat := models.FAQCategory{
		Name:      strings.TrimSpace(req.Name),
		Order:     req.Order,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.categories.InsertOne(ctx, cat)
	if err != nil {
		return nil, err
	}
	cat.ID = res.InsertedID.(primitive.ObjectID)
	return &cat, nil
}

func (s *FAQService) UpdateCategory(ctx context.Context, id string, req models.FAQCategoryRequest) (*models.FAQCategory, error) {
	set := bson.M{
		"name":      strings.TrimSpace(req.Name),
		"order":     req.Order,
		"updatedAt": s.now(),
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	return updateByID[models.FAQCategory](ctx, s.categories, id, set, "faq category")
}

func (s *FAQService) ToggleCategory(ctx context.Context, id string) (*models.FAQCategory, error) {
	return toggleField[models.FAQCategory](ctx, s.categories, id, "isActive", "faq category")
}

// DeleteCategory removes the category and every FAQ filed under it.
func (s *FAQService) DeleteCategory(ctx context.Context, id string) (int64, error) {
	if err := deleteByID(ctx, s.categories, id, "faq category"); err != nil {
		return 0, err
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	res, err := s.faqs.DeleteMany(ctx, bson.M{"category": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *FAQService) List(ctx context.Context, f FAQFilter, p Pagination) (*models.Page[models.FAQ], error) {
	return paginate[models.FAQ](ctx, s.faqs, f.BSON(), byOrder, p)
}

func (s *FAQService) Get(ctx context.Context, id string) (*models.FAQ, error) {
	return findByID[models.FAQ](ctx, s.faqs, id, "faq")
}

func (s *FAQService) categoryRef(ctx context.Context, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, fmt.Errorf("%w: category id %q", ErrInvalid, id)
	}
	n, err := s.categories.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return oid, err
	}
	if n == 0 {
		return oid, fmt.Errorf("%w: faq category %s does not exist", ErrInvalid, id)
	}
	return oid, nil
}

func (s *FAQService) Create(ctx context.Context, req models.FAQRequest) (*models.FAQ, error) {
	cat, err := s.categoryRef(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	now := s.now()
	faq := models.FAQ{
		Category:  cat,
		Question:  strings.TrimSpace(req.Question),
		Answer:    req.Answer,
		Order:     req.Order,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.faqs.InsertOne(ctx, faq)
	if err != nil {
		return nil, err
	}
	faq.ID = res.InsertedID.(primitive.ObjectID)
	return &faq, nil
}

func (s *FAQService) Update(ctx context.Context, id string, req models.FAQRequest) (*models.FAQ, error) {
	cat, err := s.categoryRef(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"category":  cat,
		"question":  strings.TrimSpace(req.Question),
		"answer":    req.Answer,
		"order":     req.Order,
		"updatedAt": s.now(),
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	return updateByID[models.FAQ](ctx, s.faqs, id, set, "faq")
}

func (s *FAQService) ToggleActive(ctx context.Context, id string) (*models.FAQ, error) {
	return toggleField[models.FAQ](ctx, s.faqs, id, "isActive", "faq")
}

func (s *FAQService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.faqs, id, "faq")
}

// Reorder sets each FAQ's order to its position in ids. Unknown ids are skipped.
func (s *FAQService) Reorder(ctx context.Context, ids []string) (int64, error) {
	now := s.now()
	writes := make([]mongo.WriteModel, 0, len(ids))
	for i, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, fmt.Errorf("%w: faq id %q", ErrInvalid, id)
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": oid}).
			SetUpdate(bson.M{"$set": bson.M{"order": i, "updatedAt": now}}))
	}
	if len(writes) == 0 {
		return 0, nil
	}
	res, err := s.faqs.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
