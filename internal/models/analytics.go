package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Analytics is the per-project counter snapshot, one-to-one with Project,
// upserted on each interaction event.
type Analytics struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Project   primitive.ObjectID `bson:"project" json:"project"`
	Views     int64              `bson:"views" json:"views"`
	Likes     int64              `bson:"likes" json:"likes"`
	Comments  int64              `bson:"comments" json:"comments"`
	Shares    int64              `bson:"shares" json:"shares"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
