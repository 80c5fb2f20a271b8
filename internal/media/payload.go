package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davidhbaek/gemini-audio/internal/wire"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrFileUnreadable    = errors.New("file unreadable")
)

// audioExts maps file extensions to the content types Gemini accepts for audio.
var audioExts = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".aiff": "audio/aiff",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// ContentType returns the content type registered for ext. The lookup is case
// insensitive and accepts the extension with or without the leading dot.
func ContentType(ext string) (string, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	contentType, ok := audioExts[ext]
	return contentType, ok
}

// SupportedFormats lists the accepted formats, e.g. "AAC, AIFF, FLAC".
func SupportedFormats() string {
	names := make([]string, 0, len(audioExts))
	for ext := range audioExts {
		names = append(names, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Prepare loads the whole file at path and encodes it for transport.
// The extension is checked before the file is touched.
func Prepare(path string) (wire.MediaPayload, error) {
	ext := filepath.Ext(path)
	contentType, ok := ContentType(ext)
	if !ok {
		return wire.MediaPayload{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.ToLower(ext))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return wire.MediaPayload{}, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}

	return wire.MediaPayload{
		ContentType: contentType,
		Data:        Encode(data),
	}, nil
}

func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func Decode(text string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(text)
}
