package models

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var Validate = newValidator()

// Base carries the identity and bookkeeping fields shared by every stored entity.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (b *Base) DocBase() *Base { return b }

// Document is satisfied by any entity embedding Base.
type Document interface {
	DocBase() *Base
}

// DocPtr constrains a type parameter to a pointer to an entity struct.
type DocPtr[T any] interface {
	*T
	Document
}

// Collection describes where an entity lives and how it is listed.
type Collection[T any] struct {
	Name     string
	Singular string
	Sort     bson.D
	Less     func(a, b *T) bool
}

// Repo is the persistence contract every CRUD resource is served from.
type Repo[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, doc *T) error
	Replace(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, docs []T) error
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func stampNew(b *Base, now time.Time) {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

var (
	_ Repo[Event]        = (*MongoRepo[Event, *Event])(nil)
	_ Repo[GalleryImage] = (*MemoryRepo[GalleryImage, *GalleryImage])(nil)
	_ SettingsRepo       = (*MongoSettingsRepo)(nil)
	_ SettingsRepo       = (*MemorySettingsRepo)(nil)
	_ UserRepo           = (*MongoUserRepo)(nil)
	_ UserRepo           = (*MemoryUserRepo)(nil)
)
