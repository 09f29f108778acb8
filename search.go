package onewire

// searchState is the lifecycle of a Search cursor.
type searchState int

const (
	// searchInitialized is the state of a freshly created cursor (or one
	// seeded with a family-code filter), before any device has been found.
	searchInitialized searchState = iota
	// searchDeviceFound means the cursor's address holds the fully
	// discovered ROM code from the most recent SearchNext call. Its CRC
	// byte is not verified by the search.
	searchDeviceFound
	// searchEnd means enumeration is exhausted: no discrepancies remain.
	searchEnd
)

// Search is the resumable cursor carried across enumeration calls. It
// accumulates the ROM code currently being walked and the bit positions
// where the branch phase must revisit a sibling subtree. A Search value
// is never shared between concurrent enumerations on the same bus; it is
// exclusively borrowed for the duration of a single SearchNext /
// SearchNextAlarmed call.
type Search struct {
	// address is the ROM code currently being walked. Bit i of the
	// cursor corresponds to bit (i mod 8) of byte (i div 8). Bits beyond
	// the search's current progress still hold the family seed or the
	// previous walk's values until the walk overwrites them.
	address Address
	// discrepancies records, for each bit position where both a 0- and a
	// 1-address still exist in the subtree, whether that branch is
	// pending a second visit.
	discrepancies [AddressBytes]byte
	state         searchState
}

// NewSearch creates a cursor that will enumerate every device on the bus.
func NewSearch() *Search {
	return &Search{}
}

// NewSearchForFamily creates a cursor with family written into address
// byte 0. The search does not steer by that seed: the first call walks
// the tree from bit 0, overwrites byte 0 with what the bus answers, and
// returns the same device a NewSearch cursor would. Devices of other
// families are not skipped; the caller checks the returned Device's
// family code itself and stops.
func NewSearchForFamily(family byte) *Search {
	s := &Search{}
	s.address[0] = family
	return s
}

// Done reports whether enumeration has been exhausted (no discrepancies
// remain to revisit). Once Done, further SearchNext calls return
// (nil, nil) without touching the bus.
func (s *Search) Done() bool {
	return s.state == searchEnd
}

func isBitSet(array *[AddressBytes]byte, bit int) bool {
	if bit/8 >= len(array) {
		return false
	}
	return array[bit/8]&(1<<uint(bit%8)) != 0
}

func setBit(array *[AddressBytes]byte, bit int) {
	if bit/8 >= len(array) {
		return
	}
	array[bit/8] |= 1 << uint(bit%8)
}

func resetBit(array *[AddressBytes]byte, bit int) {
	if bit/8 >= len(array) {
		return
	}
	array[bit/8] &^= 1 << uint(bit%8)
}

func writeBitTo(array *[AddressBytes]byte, bit int, value bool) {
	if value {
		setBit(array, bit)
	} else {
		resetBit(array, bit)
	}
}

func (s *Search) isAddressBitSet(bit int) bool {
	return isBitSet((*[AddressBytes]byte)(&s.address), bit)
}

func (s *Search) setAddressBit(bit int) {
	setBit((*[AddressBytes]byte)(&s.address), bit)
}

func (s *Search) resetAddressBit(bit int) {
	resetBit((*[AddressBytes]byte)(&s.address), bit)
}

func (s *Search) writeAddressBit(bit int, value bool) {
	writeBitTo((*[AddressBytes]byte)(&s.address), bit, value)
}

func (s *Search) isDiscrepancyBitSet(bit int) bool {
	return isBitSet(&s.discrepancies, bit)
}

func (s *Search) setDiscrepancyBit(bit int) {
	setBit(&s.discrepancies, bit)
}

func (s *Search) resetDiscrepancyBit(bit int) {
	resetBit(&s.discrepancies, bit)
}

// lastDiscrepancy returns the highest bit index (0..63) still set in the
// discrepancy bitmap, or -1 if none is set. That is the branch the next
// search_next call must re-visit.
func (s *Search) lastDiscrepancy() int {
	result := -1
	for i := 0; i < AddressBits; i++ {
		if s.isDiscrepancyBitSet(i) {
			result = i
		}
	}
	return result
}
