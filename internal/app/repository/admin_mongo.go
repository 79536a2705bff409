package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAdminRepository struct {
	admins *mongo.Collection
}

func newMongoAdminRepository(db *mongo.Database) AdminRepository {
	return &mongoAdminRepository{admins: db.Collection("admins")}
}

func (r *mongoAdminRepository) List(ctx context.Context) ([]model.BotAdmin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.admins.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []model.BotAdmin
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []model.BotAdmin{}
	}
	return admins, nil
}

func (r *mongoAdminRepository) GetByUserID(ctx context.Context, userID int64) (*model.BotAdmin, error) {
	var admin model.BotAdmin
	if err := r.admins.FindOne(ctx, bson.M{"user_id": userID}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *mongoAdminRepository) Create(ctx context.Context, admin *model.BotAdmin) error {
	if _, err := r.GetByUserID(ctx, admin.UserID); err == nil {
		return ErrAdminExists
	} else if !errors.Is(err, ErrAdminNotFound) {
		return err
	}

	_, err := r.admins.InsertOne(ctx, admin)
	return err
}

func (r *mongoAdminRepository) Update(ctx context.Context, userID int64, upd AdminUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Permissions != nil {
		set["permissions"] = upd.Permissions
	}

	res, err := r.admins.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *mongoAdminRepository) Delete(ctx context.Context, userID int64) error {
	res, err := r.admins.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAdminNotFound
	}
	return nil
}
