package bridge

import (
	"fmt"
	"net"
	"strconv"

	"artbridge/internal/config"
)

// portScanRange bounds the automatic search above config.BasePort.
const portScanRange = 128

// Listen binds the bridge listener. A zero port scans upward from
// config.BasePort, skipping ports reserved by the host OS and ports already
// in use. Returns the listener and the bound port.
func Listen(bind string, port int) (net.Listener, int, error) {
	if port != 0 {
		listener, err := net.Listen("tcp", net.JoinHostPort(bind, strconv.Itoa(port)))
		if err != nil {
			return nil, 0, fmt.Errorf("listen on port %d: %w", port, err)
		}
		return listener, port, nil
	}

	for candidate := config.BasePort; candidate < config.BasePort+portScanRange; candidate++ {
		if _, reserved := config.ReservedPorts[candidate]; reserved {
			continue
		}
		listener, err := net.Listen("tcp", net.JoinHostPort(bind, strconv.Itoa(candidate)))
		if err != nil {
			continue
		}
		return listener, candidate, nil
	}
	return nil, 0, fmt.Errorf("no free port in %d-%d", config.BasePort, config.BasePort+portScanRange-1)
}
