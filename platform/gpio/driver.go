// Package gpio adapts a host-Linux periph.io GPIO pin into a wire.Driver,
// for boards where the 1-Wire bus is bit-banged directly on a single
// open-drain-capable pin rather than through a bridge chip.
package gpio

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/go-onewire/onewire/pkg/wire"
)

var hostInitialized bool

func ensureHostInit() error {
	if hostInitialized {
		return nil
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	hostInitialized = true
	return nil
}

// Driver is a wire.BitDriver (and wire.ByteDriver, via the derived byte
// layer) bit-banged over a single periph.io pin.
type Driver struct {
	*wire.OpenDrainDriver
	pin gpio.PinIO
}

// Open looks up name (e.g. "GPIO4") via periph.io's pin registry and
// returns a ready-to-use Driver with default protocol timings.
func Open(name string) (*Driver, error) {
	if err := ensureHostInit(); err != nil {
		return nil, fmt.Errorf("onewire/platform/gpio: periph host init: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("onewire/platform/gpio: no such pin %q", name)
	}
	return &Driver{
		OpenDrainDriver: wire.NewOpenDrainDriver(&openDrainPin{pin: p}, busyWaitDelay{}),
		pin:             p,
	}, nil
}

// Close releases the pin to a pulled-up input so the bus is left idle-high
// rather than driven low by whatever state the last transaction left it in.
func (d *Driver) Close() error {
	return d.pin.In(gpio.PullUp, gpio.NoEdge)
}

// openDrainPin adapts a periph.io gpio.PinIO to wire.Pin. Most host GPIO
// controllers have no true open-drain mode, so open-drain behavior is
// emulated: SetHigh switches the pin to a pulled-up input (releasing the
// line to the pull-up), and SetLow drives it low as a push-pull output.
type openDrainPin struct {
	pin gpio.PinIO
}

func (p *openDrainPin) SetHigh() error {
	return p.pin.In(gpio.PullUp, gpio.NoEdge)
}

func (p *openDrainPin) SetLow() error {
	return p.pin.Out(gpio.Low)
}

// IsHigh samples the pin. The caller is expected to have released the pin
// with SetHigh first; reading without doing so would read back whatever
// level SetLow last forced.
func (p *openDrainPin) IsHigh() (bool, error) {
	return p.pin.Read() == gpio.High, nil
}

// busyWaitDelay implements wire.DelayProvider by spinning until the
// deadline: time.Sleep's scheduler wakeup latency is too coarse for the
// sub-10µs slots this protocol relies on.
type busyWaitDelay struct{}

func (busyWaitDelay) DelayMicroseconds(us uint16) {
	deadline := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}
