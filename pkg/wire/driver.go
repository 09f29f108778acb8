package wire

// Driver performs a reset and listens for a presence pulse. It returns
// WireNotHigh if the wire never floats high (stuck-low or shorted bus),
// true if at least one slave asserted a presence pulse, and false if the
// bus is idle but healthy (no slaves attached). An absent presence pulse
// is not an error.
//
//	Reset procedure
//
//	A
//	|         +-????---------
//	|         | ????
//	|---------+ ????
//	+---------------------------> us
//	0        480  |         960
//	             550
//	     Presence pulse: low if there is a slave device
type Driver interface {
	Reset() (bool, error)
}

// BitDriver composes Driver with single-bit slots. See
// https://www.maximintegrated.com/en/app-notes/index.mvp/id/126 for the
// underlying timing diagrams this implements.
type BitDriver interface {
	Driver
	// ReadBit runs a read slot and returns the sampled line level.
	ReadBit() (bool, error)
	// WriteBit runs a write slot, driving the line per the given bit.
	WriteBit(bit bool) error
}

// ByteDriver composes Driver with byte-granularity read/write, including
// bulk variants that fail fast on the first error.
type ByteDriver interface {
	Driver
	ReadByte() (byte, error)
	ReadBytes(data []byte) error
	WriteByte(data byte) error
	WriteBytes(data []byte) error
}

// OpenDrainDriver is a BitDriver built directly on a Pin + DelayProvider
// + Timing, implementing the reset, read-slot and write-slot sequences
// described on Driver, BitDriver and Timing. It is the reference software
// bit-bang backend; platform/gpio and
// platform/serial provide alternate BitDriver implementations behind
// their own build surface.
type OpenDrainDriver struct {
	Pin    Pin
	Delay  DelayProvider
	Timing Timing
}

// NewOpenDrainDriver constructs an OpenDrainDriver using DefaultTiming.
func NewOpenDrainDriver(pin Pin, delay DelayProvider) *OpenDrainDriver {
	return &OpenDrainDriver{Pin: pin, Delay: delay, Timing: DefaultTiming}
}

func (d *OpenDrainDriver) ensureWireHigh() error {
	t := &d.Timing
	for i := 0; i < t.WireHighPollCount; i++ {
		high, err := d.Pin.IsHigh()
		if err != nil {
			return err
		}
		if high {
			return nil
		}
		d.Delay.DelayMicroseconds(t.WireHighPollInterval)
	}
	return ErrWireNotHigh()
}

// Reset implements Driver.
func (d *OpenDrainDriver) Reset() (bool, error) {
	t := &d.Timing

	if err := d.Pin.SetHigh(); err != nil {
		return false, err
	}
	if err := d.ensureWireHigh(); err != nil {
		return false, err
	}

	if err := d.Pin.SetLow(); err != nil {
		return false, err
	}
	d.Delay.DelayMicroseconds(t.ResetLow)
	if err := d.Pin.SetHigh(); err != nil {
		return false, err
	}

	presence := false
	for i := 0; i < t.PresenceSampleCount; i++ {
		d.Delay.DelayMicroseconds(t.PresenceSampleInterval)
		low, err := d.Pin.IsHigh()
		if err != nil {
			return false, err
		}
		presence = presence || !low
	}
	d.Delay.DelayMicroseconds(t.ResetRecovery)
	return presence, nil
}

// ReadBit implements BitDriver.
func (d *OpenDrainDriver) ReadBit() (bool, error) {
	t := &d.Timing

	if err := d.Pin.SetLow(); err != nil {
		return false, err
	}
	d.Delay.DelayMicroseconds(t.ReadLow)
	if err := d.Pin.SetHigh(); err != nil {
		return false, err
	}
	d.Delay.DelayMicroseconds(t.ReadSampleDelay)
	val, err := d.Pin.IsHigh()
	if err != nil {
		return false, err
	}
	d.Delay.DelayMicroseconds(t.ReadRecovery)
	return val, nil
}

// WriteBit implements BitDriver.
func (d *OpenDrainDriver) WriteBit(bit bool) error {
	t := &d.Timing

	if err := d.Pin.SetLow(); err != nil {
		return err
	}
	if bit {
		d.Delay.DelayMicroseconds(t.WriteOneLow)
	} else {
		d.Delay.DelayMicroseconds(t.WriteZeroLow)
	}
	if err := d.Pin.SetHigh(); err != nil {
		return err
	}
	if bit {
		d.Delay.DelayMicroseconds(t.WriteOneRecovery)
	} else {
		d.Delay.DelayMicroseconds(t.WriteZeroRecovery)
	}
	return nil
}
