package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoUserRepo(mdb *MongodbRepo) (*MongoUserRepo, error) {
	col, err := mdb.GetCollection(UsersCollectionName)
	if err != nil {
		return nil, err
	}
	return &MongoUserRepo{col: col, now: time.Now}, nil
}

// FindByIdentifier matches either the username or the email field.
func (r *MongoUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = NormalizeIdentifier(identifier)
	if identifier == "" {
		return nil, ErrNotFound
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}
	return r.findOne(ctx, filter)
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *User) error {
	user.Username = NormalizeIdentifier(user.Username)
	user.Email = NormalizeIdentifier(user.Email)
	stampNew(&user.Base, r.now().UTC())
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return mapWriteError(err, "failed to create user")
	}
	return nil
}
