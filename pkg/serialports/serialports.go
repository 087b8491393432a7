// Package serialports lists the serial ports robot arm controller boards
// show up on, and can probe a port for an SO-101 arm (six Feetech STS
// servos with IDs 1 to 6).
package serialports

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial/enumerator"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
)

// Port describes a serial port
type Port struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string

	// ServoIDs is filled by probing
	ServoIDs []int
}

// IsSOArm reports whether the probe found exactly servos 1 to 6
func (p Port) IsSOArm() bool {
	return isSOArm(p.ServoIDs)
}

// Enumerator returns the ports known to the OS
type Enumerator func() ([]*enumerator.PortDetails, error)

// Prober returns the servo IDs answering on a port
type Prober func(ctx context.Context, port string) ([]int, error)

// Lister lists and optionally probes serial ports
type Lister struct {
	Enumerate Enumerator
	Probe     Prober
	// ProbeTimeout bounds the probe of a single port
	ProbeTimeout time.Duration
}

// NewLister creates a lister backed by the OS enumerator and the Feetech
// STS prober
func NewLister() *Lister {
	return &Lister{
		Enumerate:    enumerator.GetDetailedPortsList,
		Probe:        ProbeFeetech,
		ProbeTimeout: 2 * time.Second,
	}
}

// List returns the ports sorted by name. Bluetooth pseudo ports are skipped.
func (l *Lister) List() ([]Port, error) {
	details, err := l.Enumerate()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDeviceScan, "failed to list serial ports")
	}

	ports := make([]Port, 0, len(details))
	for _, d := range details {
		if d == nil || strings.Contains(d.Name, "Bluetooth") {
			continue
		}
		ports = append(ports, Port{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })
	return ports, nil
}

// ListAndProbe lists ports and probes each one for servos. Probe failures
// leave ServoIDs empty.
func (l *Lister) ListAndProbe(ctx context.Context) ([]Port, error) {
	logger := logging.GetLogger("serialports")

	ports, err := l.List()
	if err != nil {
		return nil, err
	}
	if l.Probe == nil {
		return ports, nil
	}

	for i := range ports {
		probeCtx := ctx
		cancel := func() {}
		if l.ProbeTimeout > 0 {
			probeCtx, cancel = context.WithTimeout(ctx, l.ProbeTimeout)
		}
		ids, err := l.Probe(probeCtx, ports[i].Name)
		cancel()
		if err != nil {
			logger.Debug().Err(err).Str("port", ports[i].Name).Msg("Probe failed")
			continue
		}
		ports[i].ServoIDs = ids
		if ports[i].IsSOArm() {
			logger.Info().Str("port", ports[i].Name).Msg("Found SO-101 arm")
		}
	}
	return ports, nil
}

// ProbeFeetech scans servo IDs 1 to 6 at 1 Mbaud over the STS protocol
func ProbeFeetech(ctx context.Context, port string) ([]int, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	servos, err := bus.Scan(ctx, 1, 6)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(servos))
	for _, s := range servos {
		ids = append(ids, s.ID)
	}
	sort.Ints(ids)
	return ids, nil
}

func isSOArm(ids []int) bool {
	if len(ids) != 6 {
		return false
	}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for i := 1; i <= 6; i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}
