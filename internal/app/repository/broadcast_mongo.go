package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBroadcastRepository struct {
	broadcasts *mongo.Collection
}

func newMongoBroadcastRepository(db *mongo.Database) BroadcastRepository {
	return &mongoBroadcastRepository{broadcasts: db.Collection("broadcasts")}
}

type broadcastDoc struct {
	OID                primitive.ObjectID `bson:"_id,omitempty"`
	model.BroadcastJob `bson:",inline"`
}

func (r *mongoBroadcastRepository) List(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error) {
	page, limit = pageWindow(page, limit)

	total, err := r.broadcasts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.broadcasts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []broadcastDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	jobs := make([]model.BroadcastJob, 0, len(docs))
	for _, d := range docs {
		j := d.BroadcastJob
		j.ID = d.OID.Hex()
		jobs = append(jobs, j)
	}
	return jobs, total, nil
}

func (r *mongoBroadcastRepository) Get(ctx context.Context, id string) (*model.BroadcastJob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBroadcastNotFound
	}

	var doc broadcastDoc
	if err := r.broadcasts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBroadcastNotFound
		}
		return nil, err
	}

	job := doc.BroadcastJob
	job.ID = doc.OID.Hex()
	return &job, nil
}

func (r *mongoBroadcastRepository) Create(ctx context.Context, job *model.BroadcastJob) error {
	res, err := r.broadcasts.InsertOne(ctx, broadcastDoc{BroadcastJob: *job})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		job.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBroadcastRepository) CancelPending(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBroadcastNotFound
	}

	res, err := r.broadcasts.UpdateOne(ctx,
		bson.M{"_id": oid, "status": model.BroadcastPending},
		bson.M{"$set": bson.M{
			"status":       model.BroadcastCancelled,
			"cancelled_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.Get(ctx, id); errors.Is(err, ErrBroadcastNotFound) {
			return ErrBroadcastNotFound
		}
		return ErrBroadcastNotPending
	}
	return nil
}
