package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoStatsRepository struct {
	users *mongo.Collection
	files *mongo.Collection
}

func newMongoStatsRepository(db *mongo.Database) StatsRepository {
	return &mongoStatsRepository{
		users: db.Collection("users"),
		files: db.Collection("files"),
	}
}

func (r *mongoStatsRepository) Collect(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}

	total, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.Users.Total = total

	banned, err := r.users.CountDocuments(ctx, bson.M{"banned": true})
	if err != nil {
		return nil, err
	}
	stats.Users.Banned = banned

	premium, err := r.users.CountDocuments(ctx, bson.M{"is_premium": true})
	if err != nil {
		return nil, err
	}
	stats.Users.Premium = premium

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	recent, err := r.users.CountDocuments(ctx, bson.M{"joined_date": bson.M{"$gte": weekAgo}})
	if err != nil {
		return nil, err
	}
	stats.Users.RecentWeek = recent

	fileCount, err := r.files.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.Files.Total = fileCount

	cursor, err := r.files.Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": nil, "totalSize": bson.M{"$sum": "$file_size"}}},
	})
	if err != nil {
		return nil, err
	}
	var sums []struct {
		TotalSize int64 `bson:"totalSize"`
	}
	if err := cursor.All(ctx, &sums); err != nil {
		return nil, err
	}
	if len(sums) > 0 {
		stats.Files.TotalStorageBytes = sums[0].TotalSize
	}
	return stats, nil
}

type mongoStatusRepository struct {
	status   *mongo.Collection
	settings *mongo.Collection
}

func newMongoStatusRepository(db *mongo.Database) StatusRepository {
	return &mongoStatusRepository{
		status:   db.Collection("bot_status"),
		settings: db.Collection("settings"),
	}
}

type statusDoc struct {
	ID              string `bson:"_id"`
	model.BotStatus `bson:",inline"`
}

func (r *mongoStatusRepository) Get(ctx context.Context) (*model.BotStatus, error) {
	var doc statusDoc
	err := r.status.FindOne(ctx, bson.M{"_id": model.StatusID}).Decode(&doc)
	if err == nil {
		status := doc.BotStatus
		status.ID = doc.ID
		return &status, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	var raw bson.M
	err = r.settings.FindOne(ctx, bson.M{"_id": model.SettingsID}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	delete(raw, "_id")
	return statusFromSettings(model.Settings(raw)), nil
}
