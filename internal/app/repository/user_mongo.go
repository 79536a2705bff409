package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUserRepository struct {
	users    *mongo.Collection
	spamLogs *mongo.Collection
}

func newMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		users:    db.Collection("users"),
		spamLogs: db.Collection("spam_logs"),
	}
}

func (r *mongoUserRepository) List(ctx context.Context, q UserQuery) ([]model.User, int64, error) {
	page, limit := pageWindow(q.Page, q.Limit)

	filter := bson.M{}
	if q.Search != "" {
		or := []bson.M{{"name": bson.M{"$regex": q.Search, "$options": "i"}}}
		if id, err := strconv.ParseInt(q.Search, 10, 64); err == nil {
			or = append(or, bson.M{"user_id": id})
		}
		filter["$or"] = or
	}

	switch q.Filter {
	case model.UserFilterActive:
		filter["banned"] = bson.M{"$ne": true}
	case model.UserFilterBanned:
		filter["banned"] = true
	case model.UserFilterPremium:
		filter["is_premium"] = true
	}

	total, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "joined_date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, total, nil
}

func (r *mongoUserRepository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	update := bson.M{"banned": banned}
	if banned {
		update["banned_at"] = time.Now().UTC()
	} else {
		update["banned_at"] = nil
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepository) CountActive(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{"banned": bson.M{"$ne": true}})
}

func (r *mongoUserRepository) ClearSpamFlag(ctx context.Context, userID int64) error {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"spam_flagged": false, "spam_count": 0}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepository) ListFlagged(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	page, limit = pageWindow(page, limit)

	filter := bson.M{"spam_flagged": true}

	total, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "spam_count", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, total, nil
}

func (r *mongoUserRepository) ListHighActivity(ctx context.Context, since time.Time, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "message_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.users.Find(ctx, bson.M{"last_active": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (r *mongoUserRepository) RecentSpamLogs(ctx context.Context, since time.Time, limit int) ([]model.SpamLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "message_count", Value: -1}}).
		SetLimit(int64(limit))

	// The collection might not exist yet; return empty on any error.
	cursor, err := r.spamLogs.Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}}, opts)
	if err != nil {
		return []model.SpamLogEntry{}, nil
	}
	defer cursor.Close(ctx)

	var logs []model.SpamLogEntry
	if err := cursor.All(ctx, &logs); err != nil {
		return []model.SpamLogEntry{}, nil
	}
	if logs == nil {
		logs = []model.SpamLogEntry{}
	}
	return logs, nil
}
