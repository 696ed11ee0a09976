package models

import "go.mongodb.org/mongo-driver/bson"

// Event is one item on the celebration schedule. Day is a free-form grouping label
// such as "Thursday" or "April 24, 2025".
type Event struct {
	Base        `bson:",inline"`
	Title       string `bson:"title" json:"title" validate:"required,max=200"`
	Date        string `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `bson:"start_time" json:"startTime" validate:"required"`
	EndTime     string `bson:"end_time" json:"endTime" validate:"required"`
	Location    string `bson:"location" json:"location" validate:"required"`
	Description string `bson:"description" json:"description"`
	DressCode   string `bson:"dress_code" json:"dressCode"`
	Notes       string `bson:"notes" json:"notes"`
	Day         string `bson:"day" json:"day" validate:"required"`
	MapURL      string `bson:"map_url" json:"mapUrl" validate:"omitempty,url"`
	WebsiteURL  string `bson:"website_url" json:"websiteUrl" validate:"omitempty,url"`
}

var EventCollection = Collection[Event]{
	Name:     "events",
	Singular: "event",
	Sort:     bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}},
	Less: func(a, b *Event) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	},
}
