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

type mongoSettingsRepository struct {
	settings *mongo.Collection
}

func newMongoSettingsRepository(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepository{settings: db.Collection("settings")}
}

func (r *mongoSettingsRepository) Get(ctx context.Context) (model.Settings, error) {
	var doc bson.M
	err := r.settings.FindOne(ctx, bson.M{"_id": model.SettingsID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	delete(doc, "_id")
	out := make(model.Settings, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}

func (r *mongoSettingsRepository) Update(ctx context.Context, updates model.Settings) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}

	_, err := r.settings.UpdateOne(ctx,
		bson.M{"_id": model.SettingsID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	return err
}
