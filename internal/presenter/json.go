package presenter

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/game"
	"scopone-game/internal/protocol"
)

// JSON writes one protocol envelope per event, newline separated.
type JSON struct {
	mu  sync.Mutex
	w   io.Writer
	log logrus.FieldLogger
}

// NewJSON creates a JSON-lines presenter. Encoding failures are logged and skipped.
func NewJSON(w io.Writer, log logrus.FieldLogger) *JSON {
	return &JSON{w: w, log: log}
}

// Emit implements game.Sink.
func (j *JSON) Emit(ev game.Event) {
	raw, err := protocol.EventMessage(ev)
	if err != nil {
		j.log.WithError(err).Warnf("Dropping %s event", ev.Kind)
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(append(raw, '\n')); err != nil {
		j.log.WithError(err).Error("Failed to write event")
	}
}
