package midi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"artbridge/internal/artset"
	"artbridge/internal/logging"
)

// ErrNoOutput reports a send attempted with no bound output port.
var ErrNoOutput = errors.New("midi: no output port bound")

// Sender delivers one raw MIDI message to an output.
type Sender interface {
	Send(msg []byte) error
}

// Dispatcher forwards articulation triggers to the bound output.
type Dispatcher struct {
	mu     sync.Mutex
	out    Sender
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with no output bound.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logging.NewComponentLogger(logger, "midi")}
}

// Bind routes subsequent dispatches to out. A nil out unbinds.
func (d *Dispatcher) Bind(out Sender) {
	d.mu.Lock()
	d.out = out
	d.mu.Unlock()
}

// Bound reports whether an output is currently bound.
func (d *Dispatcher) Bound() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.out != nil
}

// Dispatch applies the channel policy to the trigger and sends it. Channel-
// voice statuses (high nibble 0x80-0xE0) get their channel nibble replaced
// when applyChannel is set; system statuses (0xF0 and above) pass through
// unmodified. Fire and forget: there is no timeout and no retry.
func (d *Dispatcher) Dispatch(t artset.Trigger, channel byte, applyChannel bool) error {
	msg := Apply(t, channel, applyChannel)

	d.mu.Lock()
	out := d.out
	d.mu.Unlock()
	if out == nil {
		return ErrNoOutput
	}
	payload := []byte{msg.Status, msg.Data1, msg.Data2}
	// Program change and channel pressure are two-byte messages.
	if s := msg.Status & 0xF0; s == 0xC0 || s == 0xD0 {
		payload = payload[:2]
	}
	if err := out.Send(payload); err != nil {
		return fmt.Errorf("send midi: %w", err)
	}
	d.logger.Debug("midi dispatched", logging.String("message", Classify(msg.Status, msg.Data1, msg.Data2)))
	return nil
}

// Apply returns the trigger with the channel policy applied, without sending.
func Apply(t artset.Trigger, channel byte, applyChannel bool) artset.Trigger {
	if applyChannel && t.Status >= 0x80 && t.Status <= 0xEF {
		t.Status = t.Status&0xF0 | channel&0x0F
	}
	return t
}
