package event

import (
	log "github.com/sirupsen/logrus"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

var _ service.EventDispatcher = &LogDispatcher{}

// LogDispatcher records domain events in the structured log. It stands in
// for an outbound message broker, which this service deliberately does not
// have.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
