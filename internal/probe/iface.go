package probe

import (
	"context"
	"net"
	"strings"
)

// InterfaceProber checks the Physical layer: it passes if at least one
// non-loopback network interface reports up. No network I/O happens, so
// no timeout is enforced. Zero usable interfaces is a failure, not an
// error.
type InterfaceProber struct {
	// List enumerates the host's interfaces. Defaults to net.Interfaces;
	// tests substitute a fake.
	List func() ([]net.Interface, error)
}

func NewInterfaceProber() *InterfaceProber {
	return &InterfaceProber{List: net.Interfaces}
}

func (p *InterfaceProber) Describe() string {
	return "Network interface is up"
}

func (p *InterfaceProber) Probe(_ context.Context) Outcome {
	list := p.List
	if list == nil {
		list = net.Interfaces
	}
	ifaces, err := list()
	if err != nil {
		return Outcome{Succeeded: false, Message: "interface lookup: " + err.Error()}
	}

	var up []string
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		if ifc.Flags&net.FlagUp != 0 {
			up = append(up, ifc.Name)
		}
	}
	if len(up) == 0 {
		return Outcome{Succeeded: false, Message: "no active interfaces"}
	}
	return Outcome{Succeeded: true, Message: "via " + strings.Join(up, ", ")}
}
