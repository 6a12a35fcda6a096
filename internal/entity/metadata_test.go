package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name string
		meta ImageMetadata
		key  string
	}{
		{
			name: "jpeg format lowercased",
			meta: ImageMetadata{UserID: "122445", Timestamp: 1734786841, Format: "JPEG"},
			key:  "122445/1734786841/1734786841.jpeg",
		},
		{
			name: "png",
			meta: ImageMetadata{UserID: "u1", Timestamp: 7, Format: "PNG"},
			key:  "u1/7/7.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.key, tt.meta.ObjectKey())
		})
	}
}

func TestContentType(t *testing.T) {
	meta := ImageMetadata{UserID: "u1", Timestamp: 1, Format: "JPEG"}
	require.Equal(t, "image/jpeg", meta.ContentType())
}
