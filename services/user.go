package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storeadmin-backend/models"
)

// UserService manages customer and admin accounts.
type UserService struct {
	db    *mongo.Database
	users *mongo.Collection
	now   func() time.Time
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{db: db, users: db.Collection("users"), now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) List(ctx context.Context, f UserFilter, p Pagination) (*models.Page[models.User], error) {
	return paginate[models.User](ctx, s.users, f.BSON(), bson.D{{Key: "createdAt", Value: -1}}, p)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return findByID[models.User](ctx, s.users, id, "user")
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u); err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"email": normalizeEmail(email)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	exists, err := s.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	now := s.now()
	u := models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  string(hashed),
		Phone:     req.Phone,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		return nil, duplicate(err, "email "+email)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	set := bson.M{"updatedAt": s.now()}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		set["avatar"] = *req.Avatar
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	return updateByID[models.User](ctx, s.users, id, set, "user")
}

func (s *UserService) ToggleActive(ctx context.Context, id string) (*models.User, error) {
	return toggleField[models.User](ctx, s.users, id, "isActive", "user")
}

func (s *UserService) SetRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	return updateByID[models.User](ctx, s.users, id, bson.M{"role": role, "updatedAt": s.now()}, "user")
}

func (s *UserService) UpdateAvatar(ctx context.Context, id, url string) (*models.User, error) {
	return updateByID[models.User](ctx, s.users, id, bson.M{"avatar": url, "updatedAt": s.now()}, "user")
}

// cascadeCollections lists the collections holding documents owned by a user.
var cascadeCollections = []string{"orders", "comments", "notifications", "subscribers"}

// Delete removes the user and then everything the user owns. The steps are not
// transactional; a failure part way leaves the remaining documents in place.
func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := deleteByID(ctx, s.users, id, "user"); err != nil {
		return err
	}
	for _, name := range cascadeCollections {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.M{"user": oid}); err != nil {
			return fmt.Errorf("cascade %s: %w", name, err)
		}
	}
	if _, err := s.db.Collection("chats").DeleteMany(ctx, bson.M{"userId": oid.Hex()}); err != nil {
		return fmt.Errorf("cascade chats: %w", err)
	}
	return nil
}
