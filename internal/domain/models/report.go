package models

import "time"

// DailyFarmReport represents the aggregated daily snapshot archived in MongoDB.
type DailyFarmReport struct {
	Date           time.Time `bson:"date" json:"date"`
	EggsCollected  int       `bson:"eggs_collected" json:"eggs_collected"`
	Revenue        float64   `bson:"revenue" json:"revenue"`
	Expenses       float64   `bson:"expenses" json:"expenses"`
	Profit         float64   `bson:"profit" json:"profit"`
	LivestockCount int       `bson:"livestock_count" json:"livestock_count"`
	OpenAlerts     int       `bson:"open_alerts" json:"open_alerts"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
