package midi

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// OutputPortNames lists the system MIDI output ports.
func OutputPortNames() []string {
	ports := gomidi.GetOutPorts()
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// InputPortNames lists the system MIDI input ports.
func InputPortNames() []string {
	ports := gomidi.GetInPorts()
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// OutputPort is a bound system output implementing Sender.
type OutputPort struct {
	name string
	send func(gomidi.Message) error
	port drivers.Out
}

// OpenOutput binds an output selected by case-insensitive substring. An empty
// name binds the first available output.
func OpenOutput(name string) (*OutputPort, error) {
	port, err := findOut(name)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port.String(), err)
	}
	return &OutputPort{name: port.String(), send: send, port: port}, nil
}

// Name returns the resolved system port name.
func (p *OutputPort) Name() string { return p.name }

// Send delivers one raw message to the port.
func (p *OutputPort) Send(msg []byte) error {
	return p.send(gomidi.Message(msg))
}

// Close releases the port.
func (p *OutputPort) Close() error {
	return p.port.Close()
}

// InputPort is an open system input delivering messages to a handler.
type InputPort struct {
	name string
	stop func()
}

// OpenInput opens an input selected by case-insensitive substring and routes
// every message to handler.
func OpenInput(name string, handler func(msg []byte)) (*InputPort, error) {
	port, err := findIn(name)
	if err != nil {
		return nil, err
	}
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		handler([]byte(msg))
	})
	if err != nil {
		return nil, fmt.Errorf("listen on input %q: %w", port.String(), err)
	}
	return &InputPort{name: port.String(), stop: stop}, nil
}

// Name returns the resolved system port name.
func (p *InputPort) Name() string { return p.name }

// Close stops listening.
func (p *InputPort) Close() {
	p.stop()
}

// CloseDriver releases the underlying MIDI driver. Call once at shutdown.
func CloseDriver() {
	gomidi.CloseDriver()
}

func findOut(name string) (drivers.Out, error) {
	ports := gomidi.GetOutPorts()
	if len(ports) == 0 {
		return nil, fmt.Errorf("no MIDI output ports available")
	}
	if strings.TrimSpace(name) == "" {
		return ports[0], nil
	}
	needle := strings.ToLower(name)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), needle) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matches %q", name)
}

func findIn(name string) (drivers.In, error) {
	ports := gomidi.GetInPorts()
	if len(ports) == 0 {
		return nil, fmt.Errorf("no MIDI input ports available")
	}
	if strings.TrimSpace(name) == "" {
		return ports[0], nil
	}
	needle := strings.ToLower(name)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), needle) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matches %q", name)
}
