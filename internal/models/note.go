package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type Note struct {
	Base     `bson:",inline"`
	Title    string `bson:"title" json:"title" validate:"required,max=200"`
	Content  string `bson:"content" json:"content"`
	Location string `bson:"location" json:"location"`
}

var NoteCollection = Collection[Note]{
	Name:     "notes",
	Singular: "note",
	Sort:     bson.D{{Key: "title", Value: 1}},
	Less: func(a, b *Note) bool {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	},
}
