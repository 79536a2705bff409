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

type mongoLinkRepository struct {
	links      *mongo.Collection
	categories *mongo.Collection
	activity   *mongo.Collection
}

func newMongoLinkRepository(db *mongo.Database) LinkRepository {
	return &mongoLinkRepository{
		links:      db.Collection("bot_links"),
		categories: db.Collection("link_categories"),
		activity:   db.Collection("activity_log"),
	}
}

type linkDoc struct {
	OID           primitive.ObjectID `bson:"_id,omitempty"`
	model.BotLink `bson:",inline"`
}

type categoryDoc struct {
	OID                primitive.ObjectID `bson:"_id,omitempty"`
	model.LinkCategory `bson:",inline"`
}

type activityDoc struct {
	OID                    primitive.ObjectID `bson:"_id,omitempty"`
	model.ActivityLogEntry `bson:",inline"`
}

func (r *mongoLinkRepository) List(ctx context.Context, q LinkQuery) ([]model.BotLink, int64, error) {
	page, limit := pageWindow(q.Page, q.Limit)

	filter := bson.M{}
	if q.Search != "" {
		rx := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = []bson.M{{"name": rx}, {"bot_link": rx}, {"notes": rx}}
	}
	if q.CategoryID != "" {
		filter["category_id"] = q.CategoryID
	}

	total, err := r.links.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.links.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []linkDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	links := make([]model.BotLink, 0, len(docs))
	for _, d := range docs {
		l := d.BotLink
		l.ID = d.OID.Hex()
		links = append(links, l)
	}

	if err := r.attachCategories(ctx, links); err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

func (r *mongoLinkRepository) attachCategories(ctx context.Context, links []model.BotLink) error {
	ids := make([]primitive.ObjectID, 0, len(links))
	for _, l := range links {
		if l.CategoryID == nil {
			continue
		}
		if oid, err := primitive.ObjectIDFromHex(*l.CategoryID); err == nil {
			ids = append(ids, oid)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return err
	}

	byID := make(map[string]model.LinkCategory, len(docs))
	for _, d := range docs {
		c := d.LinkCategory
		c.ID = d.OID.Hex()
		byID[c.ID] = c
	}
	for i := range links {
		if links[i].CategoryID == nil {
			continue
		}
		if c, ok := byID[*links[i].CategoryID]; ok {
			cat := c
			links[i].Category = &cat
		}
	}
	return nil
}

func (r *mongoLinkRepository) Get(ctx context.Context, id string) (*model.BotLink, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrLinkNotFound
	}

	var doc linkDoc
	if err := r.links.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	link := doc.BotLink
	link.ID = doc.OID.Hex()
	return &link, nil
}

func (r *mongoLinkRepository) Create(ctx context.Context, link *model.BotLink) error {
	res, err := r.links.InsertOne(ctx, linkDoc{BotLink: *link})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		link.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLinkRepository) Update(ctx context.Context, link *model.BotLink) error {
	oid, err := primitive.ObjectIDFromHex(link.ID)
	if err != nil {
		return ErrLinkNotFound
	}

	res, err := r.links.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        link.Name,
		"bot_link":    link.BotLink,
		"category_id": link.CategoryID,
		"link_type":   link.LinkType,
		"is_active":   link.IsActive,
		"shared_with": link.SharedWith,
		"notes":       link.Notes,
		"updated_at":  link.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrLinkNotFound
	}

	updated, err := r.Get(ctx, link.ID)
	if err != nil {
		return err
	}
	*link = *updated
	return nil
}

func (r *mongoLinkRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrLinkNotFound
	}

	res, err := r.links.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (r *mongoLinkRepository) Stats(ctx context.Context) (*model.LinkStats, error) {
	stats := &model.LinkStats{ByCategory: []model.LinkCategoryCount{}}

	total, err := r.links.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.Total = total

	active, err := r.links.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	stats.Active = active

	cursor, err := r.links.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"category_id": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{"_id": "$category_id", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grouped []struct {
		CategoryID string `bson:"_id"`
		Count      int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, err
	}

	cats, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.LinkCategory, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	for _, g := range grouped {
		row := model.LinkCategoryCount{CategoryID: g.CategoryID, Count: g.Count}
		if c, ok := byID[g.CategoryID]; ok {
			row.Name = c.Name
			row.Color = c.Color
		}
		stats.ByCategory = append(stats.ByCategory, row)
	}
	return stats, nil
}

func (r *mongoLinkRepository) ListCategories(ctx context.Context) ([]model.LinkCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	cats := make([]model.LinkCategory, 0, len(docs))
	for _, d := range docs {
		c := d.LinkCategory
		c.ID = d.OID.Hex()
		cats = append(cats, c)
	}
	return cats, nil
}

func (r *mongoLinkRepository) CreateCategory(ctx context.Context, cat *model.LinkCategory) error {
	res, err := r.categories.InsertOne(ctx, categoryDoc{LinkCategory: *cat})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		cat.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLinkRepository) UpdateCategory(ctx context.Context, cat *model.LinkCategory) error {
	oid, err := primitive.ObjectIDFromHex(cat.ID)
	if err != nil {
		return ErrCategoryNotFound
	}

	res, err := r.categories.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": cat.Name, "color": cat.Color}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *mongoLinkRepository) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCategoryNotFound
	}

	// Unlink referencing links first; they must survive the delete.
	if _, err := r.links.UpdateMany(ctx,
		bson.M{"category_id": id},
		bson.M{"$set": bson.M{"category_id": nil}}); err != nil {
		return err
	}

	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *mongoLinkRepository) AppendActivity(ctx context.Context, entry *model.ActivityLogEntry) error {
	res, err := r.activity.InsertOne(ctx, activityDoc{ActivityLogEntry: *entry})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLinkRepository) ListActivity(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error) {
	page, limit = pageWindow(page, limit)

	total, err := r.activity.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.activity.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []activityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	entries := make([]model.ActivityLogEntry, 0, len(docs))
	for _, d := range docs {
		e := d.ActivityLogEntry
		e.ID = d.OID.Hex()
		entries = append(entries, e)
	}
	return entries, total, nil
}
