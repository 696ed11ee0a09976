package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// GalleryImage references an uploaded file by the public URL the storage backend returned.
type GalleryImage struct {
	Base         `bson:",inline"`
	URL          string    `bson:"url" json:"url" validate:"required"`
	Title        string    `bson:"title" json:"title" validate:"max=200"`
	Description  string    `bson:"description" json:"description"`
	OriginalName string    `bson:"original_name" json:"originalName"`
	ContentType  string    `bson:"content_type" json:"contentType"`
	Size         int64     `bson:"size" json:"size"`
	UploadedAt   time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

var GalleryCollection = Collection[GalleryImage]{
	Name:     "gallery_images",
	Singular: "image",
	Sort:     bson.D{{Key: "uploaded_at", Value: -1}},
	Less: func(a, b *GalleryImage) bool {
		return a.UploadedAt.After(b.UploadedAt)
	},
}
