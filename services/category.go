package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storeadmin-backend/models"
)

// CategoryService manages product categories.
type CategoryService struct {
	categories *mongo.Collection
	products   *mongo.Collection
	now        func() time.Time
}

func NewCategoryService(db *mongo.Database) *CategoryService {
	return &CategoryService{
		categories: db.Collection("categories"),
		products:   db.Collection("products"),
		now:        time.Now,
	}
}

func (s *CategoryService) List(ctx context.Context, f CategoryFilter, p Pagination) (*models.Page[models.Category], error) {
	return paginate[models.Category](ctx, s.categories, f.BSON(), bson.D{{Key: "name", Value: 1}}, p)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return findByID[models.Category](ctx, s.categories, id, "category")
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	now := s.now()
	c := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	slug, err := uniqueSlug(ctx, s.categories, c.Name, "category", primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	c.Slug = slug

	res, err := s.categories.InsertOne(ctx, c)
	if err != nil {
		return nil, duplicate(err, "category")
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return &c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req models.CategoryRequest) (*models.Category, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	slug, err := uniqueSlug(ctx, s.categories, name, "category", oid)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"name":        name,
		"slug":        slug,
		"description": req.Description,
		"updatedAt":   s.now(),
	}
	if req.Image != "" {
		set["image"] = req.Image
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	return updateByID[models.Category](ctx, s.categories, id, set, "category")
}

func (s *CategoryService) SetImage(ctx context.Context, id, url string) (*models.Category, error) {
	return updateByID[models.Category](ctx, s.categories, id, bson.M{"image": url, "updatedAt": s.now()}, "category")
}

func (s *CategoryService) ToggleActive(ctx context.Context, id string) (*models.Category, error) {
	return toggleField[models.Category](ctx, s.categories, id, "isActive", "category")
}

// Delete refuses to remove a category that products still reference.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.products.CountDocuments(ctx, bson.M{"category": oid})
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category is used by %d products", ErrConflict, n)
	}
	return deleteByID(ctx, s.categories, id, "category")
}
