package settings

import "errors"

// ErrNotFound is returned by a Store when no document has been persisted yet.
var ErrNotFound = errors.New("settings document not found")

// Store persists the raw settings document.
type Store interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// Locator is implemented by stores that can name where the document lives.
type Locator interface {
	Location() string
}
