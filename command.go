package onewire

// Command is a 1-Wire ROM-level command byte, issued immediately after
// a successful reset.
type Command byte

const (
	// SelectRom addresses a single specific device for the remainder of
	// the transaction.
	SelectRom Command = 0x55
	// SearchNext drives one round of the search/enumeration state machine
	// across all devices on the bus.
	SearchNext Command = 0xF0
	// SearchNextAlarmed drives one round of the search/enumeration state
	// machine restricted to devices currently asserting an alarm condition.
	SearchNextAlarmed Command = 0xEC
)
