package repository

import (
	"context"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoFileRepository struct {
	files *mongo.Collection
}

func newMongoFileRepository(db *mongo.Database) FileRepository {
	return &mongoFileRepository{files: db.Collection("files")}
}

type fileDoc struct {
	OID        primitive.ObjectID `bson:"_id,omitempty"`
	model.File `bson:",inline"`
}

func (r *mongoFileRepository) List(ctx context.Context, q FileQuery) ([]model.File, int64, error) {
	page, limit := pageWindow(q.Page, q.Limit)

	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = []bson.M{
			{"file_name": bson.M{"$regex": q.Search, "$options": "i"}},
			{"caption": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	if q.Type != "" {
		filter["file_type"] = q.Type
	}

	total, err := r.files.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.files.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []fileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	files := make([]model.File, 0, len(docs))
	for _, d := range docs {
		f := d.File
		f.ID = d.OID.Hex()
		files = append(files, f)
	}
	return files, total, nil
}
