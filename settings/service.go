// Package settings loads and saves the application settings document.
package settings

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Service synchronizes Settings with a Store. It holds no cached state
// between calls and does no locking; concurrent writers race and the last
// write wins.
type Service struct {
	store  Store
	logger *log.Logger
}

func NewService(store Store, opts ...ServiceOption) *Service {
	svc := &Service{
		store:  store,
		logger: log.StandardLogger(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Load always returns usable Settings. Failures are logged and replaced by
// Default().
func (svc *Service) Load() Settings {
	s, err := svc.TryLoad()
	if err != nil {
		svc.logEntry(err).Error("Error loading settings")
	}
	return s
}

// Save persists s. Failures are logged and not reported to the caller,
// use TrySave to observe them.
func (svc *Service) Save(s Settings) {
	if err := svc.TrySave(s); err != nil {
		svc.logEntry(err).Error("Error saving settings")
	}
}

func (svc *Service) logEntry(err error) *log.Entry {
	fields := log.Fields{"error": err}
	if l, ok := svc.store.(Locator); ok {
		fields["path"] = l.Location()
	}
	return svc.logger.WithFields(fields)
}

// TryLoad is like Load but also returns the reason defaults were used.
// A missing or empty document is not an error.
func (svc *Service) TryLoad() (Settings, error) {
	data, err := svc.store.Read()
	if errors.Is(err, ErrNotFound) {
		svc.logger.Debug("No settings persisted, using defaults")
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("error reading settings: %w", err)
	}

	return Decode(data)
}

func (svc *Service) TrySave(s Settings) error {
	svc.logger.WithFields(log.Fields{"settings": s}).Trace("Save settings")

	data, err := Encode(s)
	if err != nil {
		return err
	}

	if err := svc.store.Write(data); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}

	return nil
}
