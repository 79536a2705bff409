package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoFsubRepository struct {
	channels *mongo.Collection
}

func newMongoFsubRepository(db *mongo.Database) FsubRepository {
	return &mongoFsubRepository{channels: db.Collection("fsub_channels")}
}

type fsubDoc struct {
	OID               primitive.ObjectID `bson:"_id,omitempty"`
	model.FsubChannel `bson:",inline"`
}

func (r *mongoFsubRepository) List(ctx context.Context) ([]model.FsubChannel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})
	cursor, err := r.channels.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []fsubDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	channels := make([]model.FsubChannel, 0, len(docs))
	for _, d := range docs {
		ch := d.FsubChannel
		ch.ID = d.OID.Hex()
		channels = append(channels, ch)
	}
	return channels, nil
}

func (r *mongoFsubRepository) Add(ctx context.Context, ch *model.FsubChannel) error {
	err := r.channels.FindOne(ctx, bson.M{"channel_id": ch.ChannelID}).Err()
	if err == nil {
		return ErrChannelExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	res, err := r.channels.InsertOne(ctx, fsubDoc{FsubChannel: *ch})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ch.ID = oid.Hex()
	}
	return nil
}

func (r *mongoFsubRepository) Remove(ctx context.Context, channelID int64) error {
	res, err := r.channels.DeleteOne(ctx, bson.M{"channel_id": channelID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrChannelNotFound
	}
	return nil
}
