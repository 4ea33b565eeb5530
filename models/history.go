package models

import "time"

// Identification is a stored identify result, kept as an audit trail of what
// the service answered for which image.
type Identification struct {
	ID        string      `json:"id" bson:"_id"`
	ImageHash string      `json:"image_hash" bson:"image_hash"`
	Place     PlaceRecord `json:"place" bson:"place"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
