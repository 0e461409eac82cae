package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeadmin-backend/models"
)

// ProductService manages the product catalogue.
type ProductService struct {
	products   *mongo.Collection
	categories *mongo.Collection
	now        func() time.Time
}

func NewProductService(db *mongo.Database) *ProductService {
	return &ProductService{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		now:        time.Now,
	}
}

// repriceAttempts bounds the read-modify-write retries of Update when price or
// discount change underneath it.
const repriceAttempts = 3

func (s *ProductService) List(ctx context.Context, f ProductFilter, p Pagination) (*models.Page[models.Product], error) {
	return paginate[models.Product](ctx, s.products, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return findByID[models.Product](ctx, s.products, id, "product")
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := s.products.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	now := s.now()
	p := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
		Images:      req.Images,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Category != "" {
		cat, err := s.categoryRef(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		p.Category = &cat
	}

	slug, err := s.uniqueSlug(ctx, p.Name, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	p.Slug = slug
	p.Reprice()

	res, err := s.products.InsertOne(ctx, p)
	if err != nil {
		return nil, duplicate(err, "product")
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return &p, nil
}

// Update applies the given fields and stores finalPrice computed by
// models.ComputeFinalPrice, the same path Create uses. The write is guarded on
// the price and discount it was computed from.
func (s *ProductService) Update(ctx context.Context, id string, req models.ProductUpdateRequest) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	unset := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		slug, err := s.uniqueSlug(ctx, name, oid)
		if err != nil {
			return nil, err
		}
		set["name"] = name
		set["slug"] = slug
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if req.Category != nil {
		if *req.Category == "" {
			unset["category"] = ""
		} else {
			cat, err := s.categoryRef(ctx, *req.Category)
			if err != nil {
				return nil, err
			}
			set["category"] = cat
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	for attempt := 0; attempt < repriceAttempts; attempt++ {
		var cur models.Product
		if err := s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&cur); err != nil {
			return nil, notFound(err, "product")
		}
		filter := bson.M{"_id": oid, "price": cur.Price, "discount": cur.Discount}

		if req.Price != nil {
			cur.Price = *req.Price
		}
		if req.Discount != nil {
			cur.Discount = *req.Discount
		}
		cur.Reprice()

		set["price"] = cur.Price
		set["discount"] = cur.Discount
		set["finalPrice"] = cur.FinalPrice
		set["updatedAt"] = s.now()
		update := bson.M{"$set": set}
		if len(unset) > 0 {
			update["$unset"] = unset
		}

		var p models.Product
		err := s.products.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
		if err == nil {
			return &p, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, duplicate(err, "product")
		}
	}
	return nil, fmt.Errorf("%w: product %s changed during update, retry", ErrConflict, id)
}

func (s *ProductService) ToggleActive(ctx context.Context, id string) (*models.Product, error) {
	return toggleField[models.Product](ctx, s.products, id, "isActive", "product")
}

func (s *ProductService) UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	return updateByID[models.Product](ctx, s.products, id, bson.M{"stock": stock, "updatedAt": s.now()}, "product")
}

func (s *ProductService) AddImages(ctx context.Context, id string, urls []string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": urls}},
		"$set":  bson.M{"updatedAt": s.now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	if err := s.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&p); err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

func (s *ProductService) RemoveImage(ctx context.Context, id, url string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$pull": bson.M{"images": url},
		"$set":  bson.M{"updatedAt": s.now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	if err := s.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&p); err != nil {
		return nil, notFound(err, "product")
	}
	return &p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.products, id, "product")
}

func (s *ProductService) categoryRef(ctx context.Context, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: category id %q", ErrInvalid, id)
	}
	n, err := s.categories.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if n == 0 {
		return primitive.NilObjectID, fmt.Errorf("%w: category %s does not exist", ErrInvalid, id)
	}
	return oid, nil
}

func (s *ProductService) uniqueSlug(ctx context.Context, name string, self primitive.ObjectID) (string, error) {
	return uniqueSlug(ctx, s.products, name, "product", self)
}

// uniqueSlug appends -2, -3, ... to the slug of name until no other document uses it.
func uniqueSlug(ctx context.Context, coll *mongo.Collection, name, fallback string, self primitive.ObjectID) (string, error) {
	base := slugify(name)
	if base == "" {
		base = fallback
	}
	candidate := base
	for i := 2; ; i++ {
		n, err := coll.CountDocuments(ctx, bson.M{"slug": candidate, "_id": bson.M{"$ne": self}})
		if err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
