package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MediaKind is the kind of an attachment, derived from its filename
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaAudio    MediaKind = "audio"
	MediaSticker  MediaKind = "sticker"
	MediaDocument MediaKind = "document"
	MediaOther    MediaKind = "other"
)

// WhatsApp names exported attachments IMG-20250102-WA0001.jpg and so on
var mediaPrefixes = []struct {
	prefix string
	kind   MediaKind
}{
	{"IMG", MediaImage},
	{"VID", MediaVideo},
	{"PTT", MediaAudio},
	{"AUD", MediaAudio},
	{"STK", MediaSticker},
	{"DOC", MediaDocument},
}

// MediaKindOf classifies an attachment filename
func MediaKindOf(filename string) MediaKind {
	base := strings.ToUpper(filepath.Base(filename))
	for _, p := range mediaPrefixes {
		if strings.HasPrefix(base, p.prefix) {
			return p.kind
		}
	}
	// iOS exports use a numeric prefix: 00000012-PHOTO-2025-01-02-10-00-00.jpg
	switch {
	case strings.Contains(base, "-PHOTO-"):
		return MediaImage
	case strings.Contains(base, "-VIDEO-"):
		return MediaVideo
	case strings.Contains(base, "-AUDIO-"):
		return MediaAudio
	case strings.Contains(base, "-STICKER-"):
		return MediaSticker
	}
	return MediaOther
}

// DurationLookup reports the duration of an audio attachment in seconds,
// or 0 when unknown
type DurationLookup interface {
	Duration(filename string) float64
}

// SizeLookup reports the byte size of an attachment, if it exists
type SizeLookup interface {
	Size(filename string) (int64, bool)
}

// NoDurations is a DurationLookup that knows nothing
type NoDurations struct{}

func (NoDurations) Duration(string) float64 { return 0 }

// NoSizes is a SizeLookup that finds nothing
type NoSizes struct{}

func (NoSizes) Size(string) (int64, bool) { return 0, false }

// DurationIndex is a filename -> seconds table, usually produced by an
// ffprobe run and stored as YAML
type DurationIndex map[string]float64

// LoadDurationIndex reads a YAML duration table
func LoadDurationIndex(path string) (DurationIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	idx := DurationIndex{}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: fmt.Errorf("invalid duration index: %w", err)}
	}
	return idx, nil
}

// Duration implements DurationLookup
func (d DurationIndex) Duration(filename string) float64 {
	if s, ok := d[filename]; ok {
		return s
	}
	return d[filepath.Base(filename)]
}

// MediaDir resolves attachment sizes against an export directory
type MediaDir string

// Size implements SizeLookup
func (d MediaDir) Size(filename string) (int64, bool) {
	if d == "" || filename == "" {
		return 0, false
	}
	info, err := os.Stat(filepath.Join(string(d), filepath.Base(filename)))
	if err != nil || info.IsDir() {
		LogDebug("media file %s not found in %s", filename, string(d))
		return 0, false
	}
	return info.Size(), true
}
