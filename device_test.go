package onewire

import "testing"

func TestAddressString(t *testing.T) {
	a := Address{0x28, 0xff, 0x64, 0x1e, 0xa1, 0xb4, 0xe1, 0x3c}
	want := "28:ff:64:1e:a1:b4:e1:3c"
	if got := a.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestAddressFamilyCode(t *testing.T) {
	a := Address{0x10, 0, 0, 0, 0, 0, 0, 0}
	if got := a.FamilyCode(); got != 0x10 {
		t.Fatalf("FamilyCode() = 0x%02x, want 0x10", got)
	}
}

func TestAddressTextRoundTrip(t *testing.T) {
	a := Address{0x28, 0xff, 0x64, 0x1e, 0xa1, 0xb4, 0xe1, 0x3c}

	text, err := a.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var parsed Address
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if parsed != a {
		t.Fatalf("round-tripped address = %v, want %v", parsed, a)
	}
}

func TestAddressUnmarshalTextRejectsMalformed(t *testing.T) {
	var a Address
	if err := a.UnmarshalText([]byte("not-an-address")); err == nil {
		t.Fatal("expected an error for a malformed address string")
	}
}

func TestDeviceDelegatesToAddress(t *testing.T) {
	a := Address{0x28, 0xff, 0x64, 0x1e, 0xa1, 0xb4, 0xe1, 0x3c}
	d := Device{Address: a}
	if d.FamilyCode() != a.FamilyCode() {
		t.Fatalf("Device.FamilyCode() = 0x%02x, want 0x%02x", d.FamilyCode(), a.FamilyCode())
	}
	if d.String() != a.String() {
		t.Fatalf("Device.String() = %q, want %q", d.String(), a.String())
	}
}
