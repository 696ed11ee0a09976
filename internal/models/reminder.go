package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type Reminder struct {
	Base        `bson:",inline"`
	Title       string    `bson:"title" json:"title" validate:"required,max=200"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Icon        string    `bson:"icon" json:"icon" validate:"omitempty,oneof=info calendar clock gift heart map phone star warning"`
}

var ReminderCollection = Collection[Reminder]{
	Name:     "reminders",
	Singular: "reminder",
	Sort:     bson.D{{Key: "date", Value: 1}},
	Less: func(a, b *Reminder) bool {
		return a.Date.Before(b.Date)
	},
}
