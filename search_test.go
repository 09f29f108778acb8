package onewire

import "testing"

func TestNewSearchStartsUndone(t *testing.T) {
	s := NewSearch()
	if s.Done() {
		t.Fatal("fresh cursor must not report Done")
	}
	if s.lastDiscrepancy() != -1 {
		t.Fatalf("fresh cursor has no discrepancies, got lastDiscrepancy=%d", s.lastDiscrepancy())
	}
}

func TestNewSearchForFamilySeedsAddressByteZero(t *testing.T) {
	s := NewSearchForFamily(0x28)
	if s.address[0] != 0x28 {
		t.Fatalf("address[0] = 0x%02x, want 0x28", s.address[0])
	}
	if s.state != searchInitialized {
		t.Fatalf("state = %v, want searchInitialized", s.state)
	}
}

func TestDiscrepancyBitRoundTrip(t *testing.T) {
	s := NewSearch()
	for _, bit := range []int{0, 1, 7, 8, 24, 63} {
		if s.isDiscrepancyBitSet(bit) {
			t.Fatalf("bit %d unexpectedly set before write", bit)
		}
		s.setDiscrepancyBit(bit)
		if !s.isDiscrepancyBitSet(bit) {
			t.Fatalf("bit %d not set after setDiscrepancyBit", bit)
		}
		s.resetDiscrepancyBit(bit)
		if s.isDiscrepancyBitSet(bit) {
			t.Fatalf("bit %d still set after resetDiscrepancyBit", bit)
		}
	}
}

func TestLastDiscrepancyTracksHighestSetBit(t *testing.T) {
	s := NewSearch()
	s.setDiscrepancyBit(3)
	if got := s.lastDiscrepancy(); got != 3 {
		t.Fatalf("lastDiscrepancy = %d, want 3", got)
	}
	s.setDiscrepancyBit(40)
	if got := s.lastDiscrepancy(); got != 40 {
		t.Fatalf("lastDiscrepancy = %d, want 40", got)
	}
	s.resetDiscrepancyBit(40)
	if got := s.lastDiscrepancy(); got != 3 {
		t.Fatalf("lastDiscrepancy = %d, want 3 after clearing the higher bit", got)
	}
}

func TestAddressBitRoundTrip(t *testing.T) {
	s := NewSearch()
	s.setAddressBit(10)
	if !s.isAddressBitSet(10) {
		t.Fatal("bit 10 not observed set")
	}
	s.resetAddressBit(10)
	if s.isAddressBitSet(10) {
		t.Fatal("bit 10 still observed set after reset")
	}
	s.writeAddressBit(20, true)
	if !s.isAddressBitSet(20) {
		t.Fatal("writeAddressBit(20, true) did not set bit 20")
	}
	s.writeAddressBit(20, false)
	if s.isAddressBitSet(20) {
		t.Fatal("writeAddressBit(20, false) did not clear bit 20")
	}
}
