package handlers

import (
	"io"
	"net/http"

	"github.com/picdiskslimmer/picdisk/settings"
	log "github.com/sirupsen/logrus"
)

type SettingsService interface {
	Load() settings.Settings
	TrySave(settings.Settings) error
}

// Settings is a HTTP server for settings management.
type Settings struct {
	service SettingsService
}

func NewSettings(service SettingsService) *Settings {
	return &Settings{service}
}

// Get never fails, a broken or missing document yields the defaults.
func (s *Settings) Get() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		handleJsonResponse(rw, http.StatusOK, s.service.Load())
	})
}

func (s *Settings) Set() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		// Check body is not empty
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		current := s.service.Load()

		// Decode JSON over existing settings
		// Should not change fields which do not exist in request body
		updated, err := settings.DecodeOnto(current, body)
		if err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		if updated != current {
			log.
				WithFields(log.Fields{"from": current, "to": updated}).
				Debug("Settings changed")
		}

		if err := s.service.TrySave(updated); err != nil {
			handleError(rw, r, err)
			return
		}

		// Return updated version
		handleJsonResponse(rw, http.StatusOK, updated)
	})
}
