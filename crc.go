package onewire

import "github.com/go-onewire/onewire/pkg/wire"

// ComputeCRC8 folds the device's address, then the data blob, through
// the 1-Wire CRC-8 (Maxim/Dallas, polynomial x^8+x^5+x^4+1, reflected
// 0x8C, initial value 0).
func ComputeCRC8(device Device, data []byte) byte {
	crc := ComputePartialCRC8(0, device.Address[:])
	return ComputePartialCRC8(crc, data)
}

// ComputePartialCRC8 extends a running CRC-8 with more input bytes.
// Passing crc=0 starts a fresh computation.
func ComputePartialCRC8(crc byte, data []byte) byte {
	for _, b := range data {
		for i := 0; i < 8; i++ {
			mix := (crc ^ b) & 0x01
			crc >>= 1
			if mix != 0 {
				crc ^= 0x8C
			}
			b >>= 1
		}
	}
	return crc
}

// EnsureCorrectCRC8 verifies a device's address folded with data against
// an expected CRC-8 byte, returning a CrcMismatch error on failure.
func EnsureCorrectCRC8(device Device, data []byte, expected byte) error {
	computed := ComputeCRC8(device, data)
	if computed != expected {
		return wire.ErrCrcMismatch(computed, expected)
	}
	return nil
}

// addressValid reports whether a's embedded CRC-8 (byte 7) matches the
// CRC-8 over bytes 0..6.
func addressValid(a Address) bool {
	crc := ComputePartialCRC8(0, a[:7])
	return crc == a[7]
}
