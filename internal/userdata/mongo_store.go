package userdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	dbName               = "miracle"
	collectionURLs       = "urls"
	collectionUploads    = "uploads"
	collectionCounters   = "counters"
	urlSequenceCounterID = "url_id"
)

type urlDocument struct {
	ID   int64  `bson:"_id"`
	User string `bson:"user"`
	URL  string `bson:"url"`
}

type uploadDocument struct {
	User      string    `bson:"user"`
	Payload   []byte    `bson:"payload"`
	CreatedAt time.Time `bson:"createdAt"`
}

type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type MongoStore struct {
	urls     *mongo.Collection
	uploads  *mongo.Collection
	counters *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore also ensures the unique {user, url} index that keeps one
// record per user url under concurrent uploads.
func NewMongoStore(ctx context.Context, client *mongo.Client) (*MongoStore, error) {
	db := client.Database(dbName)
	store := &MongoStore{
		urls:     db.Collection(collectionURLs),
		uploads:  db.Collection(collectionUploads),
		counters: db.Collection(collectionCounters),
	}

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_url_unique"),
	}
	if _, err := store.urls.Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("error on create urls index: %w", err)
	}

	return store, nil
}

func (r *MongoStore) nextURLID(ctx context.Context) (int64, error) {
	var counter counterDocument

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: urlSequenceCounterID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("error on allocate url id: %w", err)
	}

	return counter.Seq, nil
}

func (r *MongoStore) AddURLs(ctx context.Context, user string, urls []string) ([]int64, error) {
	ids := make([]int64, 0, len(urls))

	for _, u := range urls {
		id, err := r.urlID(ctx, user, u)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *MongoStore) findURL(ctx context.Context, user, u string) (urlDocument, error) {
	var doc urlDocument
	err := r.urls.FindOne(ctx, bson.D{{Key: "user", Value: user}, {Key: "url", Value: u}}).Decode(&doc)
	return doc, err
}

// urlID returns the id of user's url, allocating one when it is new. A lost
// insert race surfaces as a duplicate key and resolves to the winner's id.
func (r *MongoStore) urlID(ctx context.Context, user, u string) (int64, error) {
	existing, err := r.findURL(ctx, user, u)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("error on find url %s: %w", u, err)
	}

	id, err := r.nextURLID(ctx)
	if err != nil {
		return 0, err
	}

	_, err = r.urls.InsertOne(ctx, urlDocument{ID: id, User: user, URL: u})
	if mongo.IsDuplicateKeyError(err) {
		winner, err := r.findURL(ctx, user, u)
		if err != nil {
			return 0, fmt.Errorf("error on find url %s: %w", u, err)
		}
		return winner.ID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error on insert url %s: %w", u, err)
	}

	return id, nil
}

func (r *MongoStore) UserURLIDs(ctx context.Context, user string) ([]int64, error) {
	cursor, err := r.urls.Find(ctx, bson.D{{Key: "user", Value: user}})
	if err != nil {
		return nil, fmt.Errorf("error on find urls of user %s: %w", user, err)
	}

	var docs []urlDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error on decode urls of user %s: %w", user, err)
	}

	ids := make([]int64, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}

	return ids, nil
}

func (r *MongoStore) DeleteURLs(ctx context.Context, ids []int64) (int64, error) {
	res, err := r.urls.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return 0, fmt.Errorf("error on delete urls: %w", err)
	}

	return res.DeletedCount, nil
}

func (r *MongoStore) DeleteUser(ctx context.Context, user string) (bool, error) {
	res, err := r.uploads.DeleteMany(ctx, bson.D{{Key: "user", Value: user}})
	if err != nil {
		return false, fmt.Errorf("error on delete user %s: %w", user, err)
	}

	return res.DeletedCount > 0, nil
}

func (r *MongoStore) SaveUpload(ctx context.Context, user string, payload []byte) error {
	doc := uploadDocument{User: user, Payload: payload, CreatedAt: time.Now().UTC()}
	if _, err := r.uploads.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error on save upload of user %s: %w", user, err)
	}

	return nil
}
