package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	DefaultQuality                         = 70
	DefaultDeleteBaseImagesAfterProcessing = false
	DefaultParallelProcessingThreadsCount  = 8
)

// ErrDecode is returned (wrapped) when a persisted document can not be
// decoded into Settings.
var ErrDecode = errors.New("malformed settings document")

// Settings holds the user-configurable parameters of the application.
// Field names double as the keys of the persisted JSON document.
type Settings struct {
	Quality                         int  `json:"Quality"`
	DeleteBaseImagesAfterProcessing bool `json:"DeleteBaseImagesAfterProcessing"`
	ParallelProcessingThreadsCount  int  `json:"ParallelProcessingThreadsCount"`
}

// Default returns a Settings value with every field set to its documented default.
func Default() Settings {
	return Settings{
		Quality:                         DefaultQuality,
		DeleteBaseImagesAfterProcessing: DefaultDeleteBaseImagesAfterProcessing,
		ParallelProcessingThreadsCount:  DefaultParallelProcessingThreadsCount,
	}
}

func (s Settings) String() string {
	return fmt.Sprintf(
		"Quality: %d, DeleteBaseImagesAfterProcessing: %t, ParallelProcessingThreadsCount: %d",
		s.Quality, s.DeleteBaseImagesAfterProcessing, s.ParallelProcessingThreadsCount,
	)
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Decode parses a persisted document. Fields missing from the document keep
// their defaults, unknown fields are ignored. Empty or null documents decode
// to Default(). On error the returned value is always Default().
func Decode(data []byte) (Settings, error) {
	return DecodeOnto(Default(), data)
}

// DecodeOnto parses data over base, so fields absent from data keep the
// values of base. Field names are matched exactly and a leading UTF-8 BOM is
// skipped. On error base is returned unchanged.
func DecodeOnto(base Settings, data []byte) (Settings, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if len(bytes.TrimSpace(data)) == 0 {
		return base, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return base, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	s := base
	for name, raw := range fields {
		var dst interface{}
		switch name {
		case "Quality":
			dst = &s.Quality
		case "DeleteBaseImagesAfterProcessing":
			dst = &s.DeleteBaseImagesAfterProcessing
		case "ParallelProcessingThreadsCount":
			dst = &s.ParallelProcessingThreadsCount
		default:
			continue
		}

		if err := json.Unmarshal(raw, dst); err != nil {
			return base, fmt.Errorf("%w: field %s: %v", ErrDecode, name, err)
		}
	}

	return s, nil
}

// Encode serializes Settings into the persisted document format.
func Encode(s Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}
	return data, nil
}
