package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrRequired is returned when no image payload was supplied.
	ErrRequired = errors.New("image is required")
	// ErrInvalid is returned when the payload is not a base64 data URI.
	ErrInvalid = errors.New("invalid image format")
)

var dataURIPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// DataURI is a decoded `data:<media-type>;base64,<payload>` value.
type DataURI struct {
	MediaType string
	Data      []byte
}

// Parse validates and decodes a data URI.
func Parse(raw string) (DataURI, error) {
	if strings.TrimSpace(raw) == "" {
		return DataURI{}, ErrRequired
	}
	m := dataURIPattern.FindStringSubmatch(raw)
	if m == nil {
		return DataURI{}, ErrInvalid
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return DataURI{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return DataURI{MediaType: m[1], Data: data}, nil
}

// IsDataURI reports whether s looks like an inline data URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// String re-encodes the image as a data URI.
func (d DataURI) String() string {
	return "data:" + d.MediaType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

// Extension returns a file extension (with dot) for the media type.
func (d DataURI) Extension() string {
	switch strings.ToLower(d.MediaType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
