package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storeadmin-backend/models"
)

// SettingService reads and writes the single global settings document.
type SettingService struct {
	settings *mongo.Collection
	now      func() time.Time
}

func NewSettingService(db *mongo.Database) *SettingService {
	return &SettingService{settings: db.Collection("settings"), now: time.Now}
}

// Get returns the global settings, writing the defaults on first read.
func (s *SettingService) Get(ctx context.Context) (*models.Setting, error) {
	def := models.DefaultSetting()
	update := bson.M{"$setOnInsert": bson.M{
		"general":      def.General,
		"order":        def.Order,
		"notification": def.Notification,
		"updatedAt":    s.now(),
	}}

	var out models.Setting
	err := s.settings.FindOneAndUpdate(ctx, bson.M{"key": models.GlobalSettingKey}, update, findOneAndUpsert()).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the blocks present in req and leaves the others as stored.
func (s *SettingService) Update(ctx context.Context, req models.UpdateSettingRequest) (*models.Setting, error) {
	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": s.now()}
	if req.General != nil {
		set["general"] = req.General
	}
	if req.Order != nil {
		set["order"] = req.Order
	}
	if req.Notification != nil {
		set["notification"] = req.Notification
	}

	var out models.Setting
	err := s.settings.FindOneAndUpdate(ctx, bson.M{"key": models.GlobalSettingKey}, bson.M{"$set": set}, findOneAndUpsert()).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
