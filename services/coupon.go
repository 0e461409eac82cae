package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeadmin-backend/mailer"
	"storeadmin-backend/models"
)

// MailQueue hands a message to background delivery.
type MailQueue interface {
	Dispatch(kind string, msg mailer.Message)
}

// CouponQuote is the result of validating a coupon against an order value.
type CouponQuote struct {
	Coupon     *models.Coupon `json:"coupon"`
	Discount   float64        `json:"discount"`
	FinalValue float64        `json:"finalValue"`
}

// CouponService manages discount coupons and their promotion emails.
type CouponService struct {
	coupons     *mongo.Collection
	subscribers *SubscriberService
	mail        MailQueue
	storeName   string
	log         *logrus.Entry
	now         func() time.Time
}

func NewCouponService(db *mongo.Database, subscribers *SubscriberService, mail MailQueue, storeName string, log *logrus.Entry) *CouponService {
	return &CouponService{
		coupons:     db.Collection("coupons"),
		subscribers: subscribers,
		mail:        mail,
		storeName:   storeName,
		log:         log,
		now:         time.Now,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *CouponService) List(ctx context.Context, f CouponFilter, p Pagination) (*models.Page[models.Coupon], error) {
	if f.Now.IsZero() {
		f.Now = s.now()
	}
	return paginate[models.Coupon](ctx, s.coupons, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

func (s *CouponService) Get(ctx context.Context, id string) (*models.Coupon, error) {
	return findByID[models.Coupon](ctx, s.coupons, id, "coupon")
}

func (s *CouponService) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := s.coupons.FindOne(ctx, bson.M{"code": normalizeCode(code)}).Decode(&c); err != nil {
		return nil, notFound(err, "coupon")
	}
	return &c, nil
}

func (s *CouponService) Create(ctx context.Context, req models.CouponRequest) (*models.Coupon, error) {
	now := s.now()
	c := models.Coupon{
		Code:          normalizeCode(req.Code),
		Description:   req.Description,
		Type:          req.Type,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		MaxDiscount:   req.MaxDiscount,
		MaxUses:       req.MaxUses,
		StartDate:     now,
		IsActive:      true,
		Source:        req.Source,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if c.Source == "" {
		c.Source = "admin"
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.StartDate != "" {
		start, err := models.ParseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		c.StartDate = start
	}
	expiry, err := models.ParseDate(req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.ExpiryDate = expiry

	if err := checkCoupon(&c); err != nil {
		return nil, err
	}

	res, err := s.coupons.InsertOne(ctx, c)
	if err != nil {
		return nil, duplicate(err, "coupon "+c.Code)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return &c, nil
}

func (s *CouponService) Update(ctx context.Context, id string, req models.CouponUpdateRequest) (*models.Coupon, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.Value != nil {
		c.Value = *req.Value
	}
	if req.MinOrderValue != nil {
		c.MinOrderValue = *req.MinOrderValue
	}
	if req.MaxDiscount != nil {
		c.MaxDiscount = req.MaxDiscount
	}
	if req.MaxUses != nil {
		c.MaxUses = req.MaxUses
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.Source != nil {
		c.Source = *req.Source
	}
	if req.StartDate != nil {
		if c.StartDate, err = models.ParseDate(*req.StartDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if req.ExpiryDate != nil {
		if c.ExpiryDate, err = models.ParseDate(*req.ExpiryDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if err := checkCoupon(c); err != nil {
		return nil, err
	}

	set := bson.M{
		"description":   c.Description,
		"type":          c.Type,
		"value":         c.Value,
		"minOrderValue": c.MinOrderValue,
		"isActive":      c.IsActive,
		"source":        c.Source,
		"startDate":     c.StartDate,
		"expiryDate":    c.ExpiryDate,
		"updatedAt":     s.now(),
	}
	unset := bson.M{}
	if req.Clears("maxDiscount") {
		unset["maxDiscount"] = ""
	} else if c.MaxDiscount != nil {
		set["maxDiscount"] = *c.MaxDiscount
	}
	if req.Clears("maxUses") {
		unset["maxUses"] = ""
	} else if c.MaxUses != nil {
		set["maxUses"] = *c.MaxUses
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	var out models.Coupon
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.coupons.FindOneAndUpdate(ctx, bson.M{"_id": c.ID}, update, opts).Decode(&out); err != nil {
		return nil, notFound(err, "coupon")
	}
	return &out, nil
}

func checkCoupon(c *models.Coupon) error {
	if !c.ExpiryDate.After(c.StartDate) {
		return fmt.Errorf("%w: expiryDate must be after startDate", ErrInvalid)
	}
	if c.Type == models.CouponPercentage && c.Value > 100 {
		return fmt.Errorf("%w: percentage value cannot exceed 100", ErrInvalid)
	}
	return nil
}

func (s *CouponService) ToggleActive(ctx context.Context, id string) (*models.Coupon, error) {
	return toggleField[models.Coupon](ctx, s.coupons, id, "isActive", "coupon")
}

func (s *CouponService) SetActive(ctx context.Context, id string, active bool) (*models.Coupon, error) {
	return updateByID[models.Coupon](ctx, s.coupons, id, bson.M{"isActive": active, "updatedAt": s.now()}, "coupon")
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coupons, id, "coupon")
}

// Validate quotes the discount a coupon gives on orderValue without redeeming it.
func (s *CouponService) Validate(ctx context.Context, code string, orderValue float64) (*CouponQuote, error) {
	c, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	discount, err := c.Discount(orderValue, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &CouponQuote{Coupon: c, Discount: discount, FinalValue: orderValue - discount}, nil
}

// Redeem increments usedCount unless the coupon is inactive or at its usage limit.
func (s *CouponService) Redeem(ctx context.Context, code string) error {
	filter := bson.M{
		"code":     normalizeCode(code),
		"isActive": true,
		"$or": bson.A{
			bson.M{"maxUses": bson.M{"$exists": false}},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$usedCount", "$maxUses"}}},
		},
	}
	res, err := s.coupons.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"usedCount": 1},
		"$set": bson.M{"updatedAt": s.now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, models.ErrCouponExhausted)
	}
	return nil
}

// Release undoes one Redeem, used when the order that redeemed the coupon was
// not stored.
func (s *CouponService) Release(ctx context.Context, code string) error {
	_, err := s.coupons.UpdateOne(ctx,
		bson.M{"code": normalizeCode(code), "usedCount": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"usedCount": -1}, "$set": bson.M{"updatedAt": s.now()}},
	)
	return err
}

// SendPromotion emails the coupon to each recipient separately. With no explicit
// recipients every active subscriber is mailed. It returns the number of queued emails.
func (s *CouponService) SendPromotion(ctx context.Context, id string, emails []string) (int, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if len(emails) == 0 {
		if emails, err = s.subscribers.ActiveEmails(ctx); err != nil {
			return 0, err
		}
	}
	if len(emails) == 0 {
		return 0, fmt.Errorf("%w: no recipients", ErrInvalid)
	}

	discount := fmt.Sprintf("%g", c.Value)
	if c.Type == models.CouponPercentage {
		discount += "%"
	}
	html, err := mailer.Render("promotion", mailer.PromotionData{
		StoreName:     s.storeName,
		Code:          c.Code,
		Description:   c.Description,
		Discount:      discount,
		MinOrderValue: c.MinOrderValue,
		ExpiryDate:    c.ExpiryDate.Format("2006-01-02"),
	})
	if err != nil {
		return 0, err
	}

	subject := fmt.Sprintf("%s: use code %s", s.storeName, c.Code)
	for _, email := range emails {
		s.mail.Dispatch("promotion", mailer.Message{To: []string{email}, Subject: subject, HTML: html})
	}
	s.log.WithFields(logrus.Fields{"coupon": c.Code, "recipients": len(emails)}).Info("promotion emails queued")
	return len(emails), nil
}

// SubscriberService manages promotion email subscribers.
type SubscriberService struct {
	subscribers *mongo.Collection
	now         func() time.Time
}

func NewSubscriberService(db *mongo.Database) *SubscriberService {
	return &SubscriberService{subscribers: db.Collection("subscribers"), now: time.Now}
}

func (s *SubscriberService) List(ctx context.Context, f SubscriberFilter, p Pagination) (*models.Page[models.Subscriber], error) {
	return paginate[models.Subscriber](ctx, s.subscribers, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

// Subscribe creates or reactivates the subscriber for req.Email.
func (s *SubscriberService) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.Subscriber, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	set := bson.M{"isActive": true}
	if req.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: user id %q", ErrInvalid, req.UserID)
		}
		set["user"] = uid
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"email": email, "createdAt": s.now()},
	}
	opts := findOneAndUpsert()

	var sub models.Subscriber
	if err := s.subscribers.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, id string) error {
	return deleteByID(ctx, s.subscribers, id, "subscriber")
}

// ActiveEmails lists the addresses of every active subscriber.
func (s *SubscriberService) ActiveEmails(ctx context.Context) ([]string, error) {
	subs, err := findAll[models.Subscriber](ctx, s.subscribers, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(subs))
	for _, sub := range subs {
		emails = append(emails, sub.Email)
	}
	return emails, nil
}
