package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type Contact struct {
	Base  `bson:",inline"`
	Name  string `bson:"name" json:"name" validate:"required,max=200"`
	Title string `bson:"title" json:"title"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email" validate:"omitempty,email"`
	// Type groups contacts on the public page, e.g. "family" or "venue".
	Type  string `bson:"type" json:"type"`
	Notes string `bson:"notes" json:"notes"`
}

var ContactCollection = Collection[Contact]{
	Name:     "contacts",
	Singular: "contact",
	Sort:     bson.D{{Key: "name", Value: 1}},
	Less: func(a, b *Contact) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
}
