package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SettingsCollectionName = "settings"

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureIndexes creates the unique indexes that back duplicate detection.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	users, err := mdb.GetCollection(UsersCollectionName)
	if err != nil {
		return err
	}
	_, err = users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("error creating user indexes: %w", err)
	}

	settings, err := mdb.GetCollection(SettingsCollectionName)
	if err != nil {
		return err
	}
	_, err = settings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("key_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating settings index: %w", err)
	}

	gallery, err := mdb.GetCollection(GalleryCollection.Name)
	if err != nil {
		return err
	}
	_, err = gallery.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uploaded_at", Value: -1}},
		Options: options.Index().SetName("uploaded_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("error creating gallery index: %w", err)
	}
	return nil
}

// MongoRepo stores one entity type in one collection.
type MongoRepo[T any, P DocPtr[T]] struct {
	col  *mongo.Collection
	spec Collection[T]
	now  func() time.Time
}

func NewMongoRepo[T any, P DocPtr[T]](mdb *MongodbRepo, spec Collection[T]) (*MongoRepo[T, P], error) {
	col, err := mdb.GetCollection(spec.Name)
	if err != nil {
		return nil, err
	}
	return &MongoRepo[T, P]{col: col, spec: spec, now: time.Now}, nil
}

func (r *MongoRepo[T, P]) List(ctx context.Context) ([]T, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(r.spec.Sort))
	if err != nil {
		return nil, fmt.Errorf("error finding %s: %w", r.spec.Name, err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", r.spec.Name, err)
	}
	return docs, nil
}

func (r *MongoRepo[T, P]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc T
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding %s %s: %w", r.spec.Singular, id, err)
	}
	return &doc, nil
}

func (r *MongoRepo[T, P]) Insert(ctx context.Context, doc *T) error {
	stampNew(P(doc).DocBase(), r.now().UTC())
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return mapWriteError(err, "error inserting "+r.spec.Singular)
	}
	return nil
}

func (r *MongoRepo[T, P]) Replace(ctx context.Context, id string, doc *T) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	b := P(doc).DocBase()
	b.ID = oid
	b.UpdatedAt = r.now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return mapWriteError(err, "error replacing "+r.spec.Singular)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo[T, P]) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("error deleting %s %s: %w", r.spec.Singular, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll empties the collection and inserts docs. The two steps are not atomic.
func (r *MongoRepo[T, P]) ReplaceAll(ctx context.Context, docs []T) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("error clearing %s: %w", r.spec.Name, err)
	}
	if len(docs) == 0 {
		return nil
	}
	now := r.now().UTC()
	batch := make([]interface{}, 0, len(docs))
	for i := range docs {
		stampNew(P(&docs[i]).DocBase(), now)
		batch = append(batch, &docs[i])
	}
	if _, err := r.col.InsertMany(ctx, batch); err != nil {
		return mapWriteError(err, "error inserting "+r.spec.Name)
	}
	return nil
}

func mapWriteError(err error, msg string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", msg, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

type MongoSettingsRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoSettingsRepo(mdb *MongodbRepo) (*MongoSettingsRepo, error) {
	col, err := mdb.GetCollection(SettingsCollectionName)
	if err != nil {
		return nil, err
	}
	return &MongoSettingsRepo{col: col, now: time.Now}, nil
}

func (r *MongoSettingsRepo) All(ctx context.Context) ([]Setting, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding settings: %w", err)
	}
	defer cursor.Close(ctx)

	settings := make([]Setting, 0)
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	return settings, nil
}

func (r *MongoSettingsRepo) Upsert(ctx context.Context, key, value string) (*Setting, error) {
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": r.now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Setting
	err := r.col.FindOneAndUpdate(ctx, bson.M{"key": key}, update, opts).Decode(&result)
	if err != nil {
		return nil, mapWriteError(err, "error upserting setting "+key)
	}
	return &result, nil
}

func (r *MongoSettingsRepo) UpsertMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := r.now().UTC()
	writes := make([]mongo.WriteModel, 0, len(values))
	for key, value := range values {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"key": key}).
			SetUpdate(bson.M{"$set": bson.M{"value": value, "updated_at": now}}).
			SetUpsert(true))
	}
	if _, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return mapWriteError(err, "error upserting settings")
	}
	return nil
}
