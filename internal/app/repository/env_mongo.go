package repository

import (
	"context"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEnvVarRepository struct {
	vars *mongo.Collection
}

func newMongoEnvVarRepository(db *mongo.Database) EnvVarRepository {
	return &mongoEnvVarRepository{vars: db.Collection("bot_env_vars")}
}

func (r *mongoEnvVarRepository) List(ctx context.Context) ([]model.EnvVar, error) {
	opts := options.Find().SetSort(bson.D{{Key: "key", Value: 1}})
	cursor, err := r.vars.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vars []model.EnvVar
	if err := cursor.All(ctx, &vars); err != nil {
		return nil, err
	}
	if vars == nil {
		vars = []model.EnvVar{}
	}
	return vars, nil
}

func (r *mongoEnvVarRepository) Upsert(ctx context.Context, v *model.EnvVar) error {
	now := time.Now().UTC()
	v.UpdatedAt = now

	_, err := r.vars.UpdateOne(ctx,
		bson.M{"key": v.Key},
		bson.M{
			"$set": bson.M{
				"value":       v.Value,
				"description": v.Description,
				"is_secret":   v.IsSecret,
				"updated_at":  now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

func (r *mongoEnvVarRepository) Delete(ctx context.Context, key string) error {
	res, err := r.vars.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrEnvVarNotFound
	}
	return nil
}
