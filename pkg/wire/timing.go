package wire

// Timing holds the microsecond-level constants a Driver uses to frame
// reset pulses and bit slots. The zero value is not usable; construct
// from DefaultTiming and override only the fields that need tuning for
// a given board's edge rate and pull-up RC behavior.
type Timing struct {
	// WireHighPollInterval is how long to wait between samples while
	// polling for the wire to float high at the start of a reset.
	WireHighPollInterval uint16
	// WireHighPollCount is the number of polls before giving up with
	// WireNotHigh. WireHighPollInterval * WireHighPollCount ~= 250us.
	WireHighPollCount int

	// ResetLow is how long the master holds the wire low during reset.
	ResetLow uint16
	// PresenceSampleInterval is the spacing between presence-pulse
	// samples taken after releasing the reset pulse.
	PresenceSampleInterval uint16
	// PresenceSampleCount is the number of presence-pulse samples taken;
	// PresenceSampleInterval * PresenceSampleCount ~= 70us.
	PresenceSampleCount int
	// ResetRecovery is the idle time after the presence window before
	// the reset call returns.
	ResetRecovery uint16

	// ReadLow is how long the master pulls low to start a read slot.
	ReadLow uint16
	// ReadSampleDelay is the wait, after releasing, before sampling.
	ReadSampleDelay uint16
	// ReadRecovery is the idle time after sampling to complete the slot.
	ReadRecovery uint16

	// WriteOneLow is the low pulse duration for writing a 1 bit.
	WriteOneLow uint16
	// WriteOneRecovery is the release+idle duration for writing a 1 bit.
	WriteOneRecovery uint16
	// WriteZeroLow is the low pulse duration for writing a 0 bit.
	WriteZeroLow uint16
	// WriteZeroRecovery is the release+idle duration for writing a 0 bit.
	WriteZeroRecovery uint16
}

// DefaultTiming are the field-tuned standard-speed timings this library
// defaults to, per the normative constants in the protocol description.
var DefaultTiming = Timing{
	WireHighPollInterval: 2,
	WireHighPollCount:    125,

	ResetLow:               480,
	PresenceSampleInterval: 10,
	PresenceSampleCount:    7,
	ResetRecovery:          410,

	ReadLow:         3,
	ReadSampleDelay: 2,
	ReadRecovery:    61,

	WriteOneLow:      10,
	WriteOneRecovery: 55,

	WriteZeroLow:      65,
	WriteZeroRecovery: 5,
}
