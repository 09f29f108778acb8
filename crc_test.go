package onewire

import (
	"errors"
	"testing"
)

func TestComputePartialCRC8EmptyIsZero(t *testing.T) {
	if got := ComputePartialCRC8(0, nil); got != 0 {
		t.Fatalf("ComputePartialCRC8(0, nil) = 0x%02x, want 0", got)
	}
}

// A CRC-8 appended to the data it was computed over always folds back to
// zero; this is the property addressValid and EnsureCorrectCRC8 both rely
// on, and it holds independent of any published test vector.
func TestCRC8SelfConsistency(t *testing.T) {
	vectors := [][]byte{
		{0x28, 0xFF, 0x64, 0x1E, 0xA1, 0xB4, 0xE1},
		{0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0x02, 0x8B, 0x55, 0x00, 0x4B, 0x46, 0x7F, 0xFF, 0x0C},
		{},
		{0xFF},
	}
	for _, data := range vectors {
		crc := ComputePartialCRC8(0, data)
		extended := append(append([]byte{}, data...), crc)
		if got := ComputePartialCRC8(0, extended); got != 0 {
			t.Fatalf("data=% x: crc=0x%02x did not fold to 0, got 0x%02x", data, crc, got)
		}
	}
}

func TestComputePartialCRC8IsIncremental(t *testing.T) {
	data := []byte{0x28, 0xFF, 0x64, 0x1E, 0xA1, 0xB4, 0xE1, 0x3C}
	whole := ComputePartialCRC8(0, data)

	var split byte
	split = ComputePartialCRC8(split, data[:3])
	split = ComputePartialCRC8(split, data[3:])
	if split != whole {
		t.Fatalf("split computation = 0x%02x, whole computation = 0x%02x", split, whole)
	}
}

func TestAddressValidAcceptsSelfComputedCRC(t *testing.T) {
	var a Address
	copy(a[:7], []byte{0x28, 0xFF, 0x64, 0x1E, 0xA1, 0xB4, 0xE1})
	a[7] = ComputePartialCRC8(0, a[:7])
	if !addressValid(a) {
		t.Fatalf("address %v with self-computed CRC must be valid", a)
	}
	a[7] ^= 0xFF
	if addressValid(a) {
		t.Fatalf("address %v with a corrupted CRC byte must be invalid", a)
	}
}

func TestEnsureCorrectCRC8(t *testing.T) {
	device := Device{Address: Address{0x28, 0xFF, 0x64, 0x1E, 0xA1, 0xB4, 0xE1, 0x3C}}
	data := []byte{0x02, 0x8B, 0x55, 0x00, 0x4B, 0x46, 0x7F, 0xFF}

	expected := ComputeCRC8(device, data)
	if err := EnsureCorrectCRC8(device, data, expected); err != nil {
		t.Fatalf("EnsureCorrectCRC8 with the matching CRC returned an error: %v", err)
	}

	err := EnsureCorrectCRC8(device, data, expected^0x01)
	if err == nil {
		t.Fatal("EnsureCorrectCRC8 with a mismatched CRC must return an error")
	}
	var crcErr *Error
	if !errors.As(err, &crcErr) {
		t.Fatalf("error %v is not an onewire.Error", err)
	}
	if crcErr.Kind != CrcMismatch {
		t.Fatalf("error kind = %v, want CrcMismatch", crcErr.Kind)
	}
}
