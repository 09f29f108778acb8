// Package onewire implements a host-side driver for the 1-Wire bus: the
// search/enumeration state machine that discovers every slave device's
// 64-bit ROM address on a shared, open-drain, master/slave wire, and the
// microsecond-level bit/byte timing protocol it rides on.
//
// Concrete GPIO back-ends live in platform/gpio and platform/serial; the
// bit/byte timing layer lives in pkg/wire; this package owns addressing,
// CRC-8, the search cursor, and the bus coordinator built on top.
package onewire

import "fmt"

// AddressBytes is the length of a ROM code in bytes.
const AddressBytes = 8

// AddressBits is the length of a ROM code in bits.
const AddressBits = AddressBytes * 8

// Address is an 8-byte ROM code, transmitted LSB-first (bit 0 first).
// Byte 0 is the family code; byte 7 is a CRC-8 over bytes 0..6. A valid
// Address always satisfies its embedded CRC.
type Address [AddressBytes]byte

// FamilyCode returns byte 0 of the address.
func (a Address) FamilyCode() byte {
	return a[0]
}

// String renders the address as lowercase, colon-separated hex:
// "hh:hh:hh:hh:hh:hh:hh:hh".
func (a Address) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x:%02x:%02x",
		a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
}

// MarshalText implements encoding.TextMarshaler, so Address round-trips
// through encoding/json as its canonical colon-separated hex string.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	var parsed Address
	n, err := fmt.Sscanf(string(text), "%02x:%02x:%02x:%02x:%02x:%02x:%02x:%02x",
		&parsed[0], &parsed[1], &parsed[2], &parsed[3],
		&parsed[4], &parsed[5], &parsed[6], &parsed[7])
	if err != nil {
		return err
	}
	if n != AddressBytes {
		return fmt.Errorf("onewire: malformed address %q", text)
	}
	*a = parsed
	return nil
}

// Device is a single 1-Wire slave identified by its ROM address.
type Device struct {
	Address Address
}

// FamilyCode returns the device's family code (address byte 0).
func (d Device) FamilyCode() byte {
	return d.Address.FamilyCode()
}

// String renders the device's address.
func (d Device) String() string {
	return d.Address.String()
}
