package onewire

import "github.com/go-onewire/onewire/pkg/wire"

// Master owns one bit-layer driver for its lifetime and exposes the
// user-facing 1-Wire transactions: reset-and-select-device, select, and
// the two enumeration operations. The wire itself is an implicit shared
// resource whose single-writer discipline is enforced by owning this
// Master exclusively for the life of the bus.
type Master struct {
	bits  wire.BitDriver
	bytes wire.ByteDriver
}

// NewMaster wraps a bit-layer driver (software bit-bang, GPIO, or serial
// bridge) as a bus coordinator.
func NewMaster(bits wire.BitDriver) *Master {
	return &Master{bits: bits, bytes: wire.NewByteDriver(bits)}
}

// ResetSelectWriteRead resets the bus, selects device, writes out, then
// reads exactly len(in) bytes into in. The presence pulse itself is not
// inspected here: a missing device surfaces to the caller as garbage data
// (typically caught by a subsequent EnsureCorrectCRC8), not as an error.
func (m *Master) ResetSelectWriteRead(device Device, out []byte, in []byte) error {
	if _, err := m.bytes.Reset(); err != nil {
		return err
	}
	if err := m.Select(device); err != nil {
		return err
	}
	if err := m.bytes.WriteBytes(out); err != nil {
		return err
	}
	return m.bytes.ReadBytes(in)
}

// ResetSelectReadOnly is ResetSelectWriteRead with an empty write.
func (m *Master) ResetSelectReadOnly(device Device, in []byte) error {
	if _, err := m.bytes.Reset(); err != nil {
		return err
	}
	if err := m.Select(device); err != nil {
		return err
	}
	return m.bytes.ReadBytes(in)
}

// ResetSelectWriteOnly is ResetSelectWriteRead with an empty read.
func (m *Master) ResetSelectWriteOnly(device Device, out []byte) error {
	if _, err := m.bytes.Reset(); err != nil {
		return err
	}
	if err := m.Select(device); err != nil {
		return err
	}
	return m.bytes.WriteBytes(out)
}

// Select writes SelectRom followed by the device's 8 address bytes. Used
// by the transaction helpers above and by device-specific decoders that
// already know which device they want and don't need a reset of their own.
func (m *Master) Select(device Device) error {
	if err := m.writeCommand(SelectRom); err != nil {
		return err
	}
	return m.bytes.WriteBytes(device.Address[:])
}

func (m *Master) writeCommand(cmd Command) error {
	return m.bytes.WriteByte(byte(cmd))
}

// SearchNext advances the search/enumeration state machine by one round,
// discovering the next device on the bus (or signaling exhaustion).
func (m *Master) SearchNext(cursor *Search) (*Device, error) {
	return m.search(cursor, SearchNext)
}

// SearchNextAlarmed is SearchNext restricted to devices currently
// asserting an alarm condition.
func (m *Master) SearchNextAlarmed(cursor *Search) (*Device, error) {
	return m.search(cursor, SearchNextAlarmed)
}

// search implements the core enumeration state machine: reset, issue the
// search command, replay the previously-discovered prefix, then walk the
// remaining bits recording/resolving discrepancies as it goes.
//
// A port of the search method in the 1-Wire crate this library is based
// on (its DeviceSearch cursor): one call yields exactly one device, and
// the cursor's discrepancy bitmap remembers where to branch differently
// on the next call.
func (m *Master) search(cursor *Search, command Command) (*Device, error) {
	if cursor.state == searchEnd {
		return nil, nil
	}

	lastDiscrepancy := cursor.lastDiscrepancy()

	present, err := m.bits.Reset()
	if err != nil {
		return nil, err
	}
	if !present {
		// An empty bus ends the enumeration outright: there is nothing
		// left to discover and no discrepancy to resume from.
		cursor.state = searchEnd
		return nil, nil
	}

	if err := m.writeCommand(command); err != nil {
		return nil, err
	}

	if lastDiscrepancy >= 0 {
		for i := 0; i < lastDiscrepancy; i++ {
			bit0, err := m.bits.ReadBit()
			if err != nil {
				return nil, err
			}
			bit1, err := m.bits.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit0 && bit1 {
				// No device responded: lost device, transient error.
				return nil, nil
			}
			// Re-steer onto the known-good path regardless of which
			// slave now answers with which polarity.
			bit := cursor.isAddressBitSet(i)
			if err := m.bits.WriteBit(bit); err != nil {
				return nil, err
			}
		}
	} else if cursor.state == searchDeviceFound {
		// No discrepancy left and a device was already found: the only
		// device on the bus has already been yielded.
		cursor.state = searchEnd
		return nil, nil
	}

	newDiscrepancy := false
	start := lastDiscrepancy
	if start < 0 {
		start = 0
	}
	for i := start; i < AddressBits; i++ {
		bit0, err := m.bits.ReadBit()
		if err != nil {
			return nil, err
		}
		bit1, err := m.bits.ReadBit()
		if err != nil {
			return nil, err
		}

		switch {
		case i == lastDiscrepancy:
			// This is the pending branch: we previously took the 0
			// branch here; now take the 1 branch.
			cursor.resetDiscrepancyBit(i)
			cursor.setAddressBit(i)
			if err := m.bits.WriteBit(true); err != nil {
				return nil, err
			}
		case bit0 && bit1:
			// No slave responded: transient error, slave dropped off.
			return nil, nil
		case !bit0 && !bit1:
			// Discrepancy: both 0- and 1-addressed slaves remain. Take
			// the 0 branch first, by convention, and remember the 1
			// branch for a later call.
			newDiscrepancy = true
			cursor.setDiscrepancyBit(i)
			cursor.resetAddressBit(i)
			if err := m.bits.WriteBit(false); err != nil {
				return nil, err
			}
		default:
			// Forced: all remaining slaves agree on bit0.
			cursor.writeAddressBit(i, bit0)
			if err := m.bits.WriteBit(bit0); err != nil {
				return nil, err
			}
		}
	}

	if !newDiscrepancy && cursor.lastDiscrepancy() < 0 {
		cursor.state = searchEnd
	} else {
		cursor.state = searchDeviceFound
	}

	found := Device{Address: cursor.address}
	return &found, nil
}
