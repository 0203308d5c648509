package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressExport stores metadata about a progress report written to object
// storage. The report itself lives in S3.
type ProgressExport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // Internal use only
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"` // Bytes
	Sessions    int                `bson:"sessions" json:"sessions"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
