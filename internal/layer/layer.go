package layer

import "fmt"

// Layer identifies one of the seven OSI layers this tool probes.
type Layer int

const (
	Physical Layer = iota + 1
	DataLink
	Network
	Transport
	Session
	Presentation
	Application
)

var names = map[Layer]string{
	Physical:     "Physical",
	DataLink:     "Data Link",
	Network:      "Network",
	Transport:    "Transport",
	Session:      "Session",
	Presentation: "Presentation",
	Application:  "Application",
}

// Plain-language explanations shown alongside each probe result.
var descriptions = map[Layer]string{
	Physical:     "Physical layer: Checks if your network hardware (Wi-Fi or Ethernet) is working. Handled by your device drivers and hardware.",
	DataLink:     "Data Link layer: Ensures your device can communicate with the router/modem over your local network. Handled by your network adapter and OS.",
	Network:      "Network layer: Tests if you can reach the wider internet (like Google DNS). Controlled by your router and IP settings.",
	Transport:    "Transport layer: Tries to start a secure connection to a server. Managed by the OS and firewall.",
	Session:      "Session layer: Manages how applications start and maintain connections. Often abstracted by the OS.",
	Presentation: "Presentation layer: Handles data encryption/decryption (like HTTPS). Managed by the browser or apps.",
	Application:  "Application layer: Tests if web services work (DNS and HTTP). Handled by your browser or apps.",
}

// All returns the seven layers in ascending order.
func All() []Layer {
	return []Layer{Physical, DataLink, Network, Transport, Session, Presentation, Application}
}

func (l Layer) Valid() bool {
	return l >= Physical && l <= Application
}

func (l Layer) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return fmt.Sprintf("Layer %d", int(l))
}

// Label is the canonical "N - Name" form used in log lines and rule packs.
func (l Layer) Label() string {
	return fmt.Sprintf("%d - %s", int(l), l.Name())
}

func (l Layer) Description() string {
	return descriptions[l]
}

func (l Layer) String() string { return l.Label() }

// Parse maps a canonical name or "N - Name" label back to a Layer.
// Used when loading rule packs from YAML.
func Parse(s string) (Layer, error) {
	for l, n := range names {
		if s == n || s == l.Label() {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}
