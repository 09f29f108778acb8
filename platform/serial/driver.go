// Package serial adapts a USB 1-Wire bridge adapter into a wire.BitDriver.
// The bridge's own firmware does the microsecond-critical bit-banging; the
// host only exchanges a small framed command/response protocol with it over
// a standard serial port, the same division of labor as the DS2480B-based
// digitemp host tool. The framing is this package's own three-command
// protocol (see the command bytes below); the DS2480B/DS9097U command set
// is not implemented.
package serial

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/go-onewire/onewire/pkg/wire"
)

// Command bytes for the adapter's request/response framing: one command
// byte per 1-Wire primitive, with a one-byte reply carrying the sampled
// result where one exists.
const (
	cmdReset    byte = 0x01
	cmdWriteBit byte = 0x02
	cmdReadBit  byte = 0x03
	replyPulse  byte = 0x01
)

const responseTimeout = 50 * time.Millisecond

// Driver is a wire.BitDriver (and, via the derived byte layer, a
// wire.ByteDriver) backed by a serial 1-Wire bridge adapter.
type Driver struct {
	port serial.Port
}

// Open opens path (e.g. "/dev/ttyUSB0") at the adapter's standard line
// settings and returns a ready-to-use Driver.
func Open(path string) (*Driver, error) {
	mode := &serial.Mode{BaudRate: 9600, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("onewire/platform/serial: opening %s: %w", path, err)
	}
	if err := port.SetReadTimeout(responseTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("onewire/platform/serial: setting read timeout: %w", err)
	}
	return &Driver{port: port}, nil
}

// Close releases the underlying serial port.
func (d *Driver) Close() error {
	return d.port.Close()
}

// Reset issues a bus reset through the adapter and reports whether any
// slave asserted a presence pulse.
func (d *Driver) Reset() (bool, error) {
	reply, err := d.exchange(cmdReset)
	if err != nil {
		return false, err
	}
	return reply == replyPulse, nil
}

// WriteBit sends a single bit slot through the adapter.
func (d *Driver) WriteBit(bit bool) error {
	payload := byte(0)
	if bit {
		payload = 1
	}
	_, err := d.exchange(cmdWriteBit, payload)
	return err
}

// ReadBit requests the adapter perform a read-bit slot and returns the
// sampled value.
func (d *Driver) ReadBit() (bool, error) {
	reply, err := d.exchange(cmdReadBit)
	if err != nil {
		return false, err
	}
	return reply == 1, nil
}

// exchange writes cmd followed by any extra bytes, then reads exactly one
// reply byte.
func (d *Driver) exchange(cmd byte, extra ...byte) (byte, error) {
	frame := append([]byte{cmd}, extra...)
	if _, err := d.port.Write(frame); err != nil {
		return 0, fmt.Errorf("onewire/platform/serial: write: %w", err)
	}
	reply := make([]byte, 1)
	n, err := d.port.Read(reply)
	if err != nil {
		return 0, fmt.Errorf("onewire/platform/serial: read: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("onewire/platform/serial: adapter did not respond within %s", responseTimeout)
	}
	return reply[0], nil
}

var _ wire.BitDriver = (*Driver)(nil)
