// Package simbus simulates a 1-Wire bus of N slaves in memory, driving
// the bit-layer protocol the way real open-drain slaves would: each bit
// slot is the wired-AND of every still-participating slave's response.
// It implements wire.BitDriver so the search/enumeration state machine
// (and the bit/byte layers underneath it) can be exercised without any
// real hardware, the same role an in-memory CPU-state fixture plays for
// an instruction-sequence search harness.
package simbus

import "github.com/go-onewire/onewire"

// Slave is one simulated 1-Wire device: a ROM address and whether it is
// currently asserting an alarm condition (relevant only to
// SearchNextAlarmed rounds).
type Slave struct {
	Address onewire.Address
	Alarmed bool
}

// SearchBus simulates the ROM-search half of the protocol: Reset,
// followed by an 8-bit command (SearchNext or SearchNextAlarmed), then
// 64 rounds of (read, read, write) bit triples.
type SearchBus struct {
	Slaves []Slave

	active  []int
	cmdBits []bool
	inRound bool
	bit     int
	subStep int // 0: about to read bit0, 1: about to read bit1, 2: about to accept write
}

// Reset reinitializes the round: every slave participates until the
// command byte and subsequent steering narrow the field. Presence is
// true iff at least one slave is attached.
func (b *SearchBus) Reset() (bool, error) {
	b.active = b.active[:0]
	for i := range b.Slaves {
		b.active = append(b.active, i)
	}
	b.cmdBits = nil
	b.inRound = false
	b.bit = 0
	b.subStep = 0
	return len(b.active) > 0, nil
}

// ReadBit returns the wired-AND of the active slaves' bit (subStep 0) or
// its complement (subStep 1) at the current address-bit position. With
// no active slaves, both reads return true (the line floats high),
// which the caller correctly interprets as "no response."
func (b *SearchBus) ReadBit() (bool, error) {
	complement := b.subStep == 1
	val := wiredAnd(b.Slaves, b.active, b.bit, complement)
	if b.subStep < 2 {
		b.subStep++
	}
	return val, nil
}

// WriteBit dispatches to command assembly (before the command byte is
// complete) or to round steering (narrowing the active slave set to
// those agreeing with the written bit, then advancing to the next
// address-bit position).
func (b *SearchBus) WriteBit(bit bool) error {
	if !b.inRound {
		b.cmdBits = append(b.cmdBits, bit)
		if len(b.cmdBits) == 8 {
			b.inRound = true
			if command(b.cmdBits) == byte(onewire.SearchNextAlarmed) {
				b.active = filterAlarmed(b.Slaves, b.active)
			}
		}
		return nil
	}

	var kept []int
	for _, idx := range b.active {
		if addressBit(b.Slaves[idx].Address, b.bit) == bit {
			kept = append(kept, idx)
		}
	}
	b.active = kept
	b.bit++
	b.subStep = 0
	return nil
}

func command(bits []bool) byte {
	var cmd byte
	for i, bit := range bits {
		if bit {
			cmd |= 1 << uint(i)
		}
	}
	return cmd
}

func filterAlarmed(slaves []Slave, active []int) []int {
	var kept []int
	for _, idx := range active {
		if slaves[idx].Alarmed {
			kept = append(kept, idx)
		}
	}
	return kept
}

func addressBit(addr onewire.Address, bit int) bool {
	return addr[bit/8]&(1<<uint(bit%8)) != 0
}

// wiredAnd computes the open-drain wired-AND of the given bit (or its
// complement) across every active slave. An empty active set returns
// true, vacuously, matching a floating-high idle line.
func wiredAnd(slaves []Slave, active []int, bit int, complement bool) bool {
	result := true
	for _, idx := range active {
		v := addressBit(slaves[idx].Address, bit)
		if complement {
			v = !v
		}
		result = result && v
	}
	return result
}
