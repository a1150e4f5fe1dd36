package settings

import (
	log "github.com/sirupsen/logrus"
)

type ServiceOption func(*Service)

func WithLogger(logger *log.Logger) ServiceOption {
	return func(svc *Service) {
		svc.logger = logger
	}
}
