package wire

// byteDriver derives byte-granularity operations from any BitDriver.
// Go has no blanket trait impl, so the derivation is a thin wrapper
// rather than an automatic interface satisfaction; NewByteDriver is the
// single place that performs it.
type byteDriver struct {
	BitDriver
}

// NewByteDriver wraps a BitDriver so it also satisfies ByteDriver, byte
// operations each composed from eight bit operations.
func NewByteDriver(bit BitDriver) ByteDriver {
	return &byteDriver{BitDriver: bit}
}

// ReadByte reads eight bits LSB-first; the first bit received becomes
// bit 0 of the result.
func (d *byteDriver) ReadByte() (byte, error) {
	var result byte
	for i := uint(0); i < 8; i++ {
		bit, err := d.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			result |= 1 << i
		}
	}
	return result, nil
}

// ReadBytes fills data one byte at a time, failing fast on the first error.
func (d *byteDriver) ReadBytes(data []byte) error {
	for i := range data {
		b, err := d.ReadByte()
		if err != nil {
			return err
		}
		data[i] = b
	}
	return nil
}

// WriteByte writes eight bits LSB-first.
func (d *byteDriver) WriteByte(data byte) error {
	for i := uint(0); i < 8; i++ {
		if err := d.WriteBit(data&(1<<i) != 0); err != nil {
			return err
		}
	}
	return nil
}

// WriteBytes writes each byte in order, failing fast on the first error.
func (d *byteDriver) WriteBytes(data []byte) error {
	for _, b := range data {
		if err := d.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
