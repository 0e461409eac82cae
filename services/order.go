package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeadmin-backend/models"
)

// OrderService manages orders and their status history.
type OrderService struct {
	orders        *mongo.Collection
	products      *mongo.Collection
	users         *mongo.Collection
	coupons       *CouponService
	notifications *NotificationService
	log           *logrus.Entry
	now           func() time.Time
}

func NewOrderService(db *mongo.Database, coupons *CouponService, notifications *NotificationService, log *logrus.Entry) *OrderService {
	return &OrderService{
		orders:        db.Collection("orders"),
		products:      db.Collection("products"),
		users:         db.Collection("users"),
		coupons:       coupons,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// newOrderCode returns a sortable unique order code.
func newOrderCode() string {
	return "ORD-" + ulid.Make().String()
}

func (s *OrderService) List(ctx context.Context, f OrderFilter, p Pagination) (*models.Page[models.Order], error) {
	return paginate[models.Order](ctx, s.orders, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return findByID[models.Order](ctx, s.orders, id, "order")
}

// Create places an order with prices frozen from the current product finalPrice.
func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest, actor string) (*models.Order, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %q", ErrInvalid, req.UserID)
	}
	if n, err := s.users.CountDocuments(ctx, bson.M{"_id": userID}); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("%w: user %s does not exist", ErrInvalid, req.UserID)
	}

	now := s.now()
	order := models.Order{
		OrderCode:     newOrderCode(),
		User:          userID,
		ShippingFee:   req.ShippingFee,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		CreatedAt:     now,
	}
	if req.AddressID != "" {
		addr, err := primitive.ObjectIDFromHex(req.AddressID)
		if err != nil {
			return nil, fmt.Errorf("%w: address id %q", ErrInvalid, req.AddressID)
		}
		order.Address = &addr
	}

	for _, it := range req.Items {
		item, err := s.snapshotItem(ctx, it)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	subtotal := order.Subtotal()
	if req.CouponCode != "" {
		quote, err := s.coupons.Validate(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		if err := s.coupons.Redeem(ctx, quote.Coupon.Code); err != nil {
			return nil, err
		}
		order.Discount = quote.Discount
		order.CouponCode = quote.Coupon.Code
	}
	order.TotalPrice = math.Max(0, subtotal+order.ShippingFee-order.Discount)
	order.ApplyStatus(models.OrderNew, "Order created", actor, now)

	res, err := s.orders.InsertOne(ctx, order)
	if err != nil {
		if order.CouponCode != "" {
			if rerr := s.coupons.Release(ctx, order.CouponCode); rerr != nil {
				s.log.WithError(rerr).WithField("coupon", order.CouponCode).Error("failed to release coupon after order insert failed")
			}
		}
		return nil, duplicate(err, "order")
	}
	order.ID = res.InsertedID.(primitive.ObjectID)

	for _, it := range order.Items {
		log := s.log.WithFields(logrus.Fields{"order": order.OrderCode, "product": it.Product.Hex()})
		res, err := s.products.UpdateOne(ctx,
			bson.M{"_id": it.Product, "stock": bson.M{"$gte": it.Quantity}},
			bson.M{"$inc": bson.M{"stock": -it.Quantity}},
		)
		switch {
		case err != nil:
			log.WithError(err).Warn("failed to reserve stock")
		case res.MatchedCount == 0:
			log.WithField("quantity", it.Quantity).Warn("stock ran out before reservation")
		}
	}
	return &order, nil
}

func (s *OrderService) snapshotItem(ctx context.Context, it models.OrderItemRequest) (models.OrderItem, error) {
	pid, err := primitive.ObjectIDFromHex(it.ProductID)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("%w: product id %q", ErrInvalid, it.ProductID)
	}
	var p models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": pid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.OrderItem{}, fmt.Errorf("%w: product %s does not exist", ErrInvalid, it.ProductID)
		}
		return models.OrderItem{}, err
	}
	if !p.IsActive {
		return models.OrderItem{}, fmt.Errorf("%w: product %s is not for sale", ErrInvalid, p.Name)
	}
	if p.Stock < it.Quantity {
		return models.OrderItem{}, fmt.Errorf("%w: only %d of %s left", ErrInvalid, p.Stock, p.Name)
	}
	item := models.OrderItem{Product: p.ID, Name: p.Name, Quantity: it.Quantity, Price: p.FinalPrice}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}
	return item, nil
}

// UpdateStatus appends a history entry and sets the current status in one
// document write, so the last history entry always matches status. Any status
// may follow any other. The owner is then notified; a notification failure is
// logged and does not undo the status change.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, note, actor string) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := models.StatusEntry{Status: status, Note: note, UpdatedBy: actor, Timestamp: now}
	update := bson.M{
		"$push": bson.M{"statusHistory": entry},
		"$set":  bson.M{"status": status, "updatedAt": now},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := s.orders.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&order); err != nil {
		return nil, notFound(err, "order")
	}

	if s.notifications != nil {
		_, err := s.notifications.Notify(ctx, models.Notification{
			User:      order.User,
			Type:      models.NotificationOrderStatus,
			Title:     fmt.Sprintf("Order %s updated", order.OrderCode),
			Message:   statusMessage(order.OrderCode, status, note),
			Link:      "/orders/" + order.ID.Hex(),
			Reference: order.ID.Hex(),
		})
		if err != nil {
			s.log.WithError(err).WithField("order", order.OrderCode).Warn("order status notification failed")
		}
	}
	return &order, nil
}

func statusMessage(code string, status models.OrderStatus, note string) string {
	msg := fmt.Sprintf("Your order %s is now %s.", code, status)
	if note != "" {
		msg += " " + note
	}
	return msg
}

func (s *OrderService) UpdatePayment(ctx context.Context, id string, status models.PaymentStatus, method string) (*models.Order, error) {
	set := bson.M{"paymentStatus": status, "updatedAt": s.now()}
	if method != "" {
		set["paymentMethod"] = method
	}
	return updateByID[models.Order](ctx, s.orders, id, set, "order")
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.orders, id, "order")
}

// Stats aggregates the dashboard counters.
func (s *OrderService) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{OrdersByStatus: map[string]int64{}}

	var err error
	if stats.TotalProducts, err = s.products.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}
	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status  string  `bson:"_id"`
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	for _, g := range groups {
		stats.OrdersByStatus[g.Status] = g.Count
		stats.TotalOrders += g.Count
		if g.Status == string(models.OrderCompleted) {
			stats.Revenue = g.Revenue
		}
	}
	return stats, nil
}
