package course

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type courseDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Title string             `bson:"title"`
}

func (d courseDocument) course() Course {
	return Course{ID: DocumentID(d.ID.Hex()), Title: d.Title}
}

type MongoRepository struct {
	collection *mongo.Collection
}

var _ Repository = (*MongoRepository)(nil)

func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) List(ctx context.Context, titleFilter string) ([]Course, error) {
	filter := bson.M{}
	if titleFilter != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(titleFilter)}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("finding courses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []courseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding courses: %w", err)
	}

	courses := make([]Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, d.course())
	}
	return courses, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc courseDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding course '%s': %w", id, err)
	}

	c := doc.course()
	return &c, nil
}

func (r *MongoRepository) Create(ctx context.Context, title string) (*Course, error) {
	doc := courseDocument{ID: primitive.NewObjectID(), Title: title}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("inserting course: %w", err)
	}

	c := doc.course()
	return &c, nil
}

func (r *MongoRepository) Update(ctx context.Context, id, title string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"title": title},
	})
	if err != nil {
		return false, fmt.Errorf("updating course '%s': %w", id, err)
	}
	return res.MatchedCount == 1, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("deleting course '%s': %w", id, err)
	}
	return res.DeletedCount == 1, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("deleting all courses: %w", err)
	}
	return nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
