package entity

import (
	"fmt"
	"strings"
)

// Dimensions are the pixel dimensions of an image at upload time.
type Dimensions struct {
	Width  int `json:"width" dynamodbav:"width"`
	Height int `json:"height" dynamodbav:"height"`
}

// ImageMetadata is one record in the metadata table. The pair
// (UserID, Timestamp) is the only identity an image has.
type ImageMetadata struct {
	UserID    string     `json:"userId" dynamodbav:"userId"`
	Timestamp int64      `json:"timestamp" dynamodbav:"timestamp"`
	Format    string     `json:"format" dynamodbav:"format"`
	Size      Dimensions `json:"size" dynamodbav:"size"`
}

// ObjectKey derives the blob storage key from the record. The key is
// never persisted: it must always be reconstructible from the record
// alone, so the record stays the single source of truth.
func (m ImageMetadata) ObjectKey() string {
	return fmt.Sprintf("%s/%d/%d.%s", m.UserID, m.Timestamp, m.Timestamp, strings.ToLower(m.Format))
}

// ContentType returns the MIME type the blob is stored under.
func (m ImageMetadata) ContentType() string {
	return "image/" + strings.ToLower(m.Format)
}

// Image is a metadata record together with the raw bytes of its blob.
type Image struct {
	Metadata ImageMetadata
	Data     []byte
}

// Thumbnail is one entry of a list response: a downscaled JPEG keyed
// by the original record's timestamp.
type Thumbnail struct {
	Timestamp int64
	Data      []byte
}
