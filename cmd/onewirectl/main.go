package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-onewire/onewire"
	"github.com/go-onewire/onewire/examples/scratchpad"
	"github.com/go-onewire/onewire/pkg/simbus"
	"github.com/go-onewire/onewire/pkg/wire"
	"github.com/go-onewire/onewire/platform/gpio"
	"github.com/go-onewire/onewire/platform/serial"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "onewirectl",
		Short: "Drive a 1-Wire bus: enumerate devices, verify CRC-8, read a scratchpad",
	}

	// scan command
	var sim bool
	var gpioPin string
	var serialPort string
	var alarmOnly bool
	var output string

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Enumerate every device on the bus",
		RunE: func(cmd *cobra.Command, args []string) error {
			bits, closeFn, err := openBus(sim, gpioPin, serialPort)
			if err != nil {
				return err
			}
			defer closeFn()

			master := onewire.NewMaster(bits)
			cursor := onewire.NewSearch()

			var devices []onewire.Device
			for !cursor.Done() {
				dev, err := searchOne(master, cursor, alarmOnly)
				if err != nil {
					return fmt.Errorf("search: %w", err)
				}
				if dev == nil {
					continue
				}
				fmt.Printf("  %s (family 0x%02x)\n", dev.Address, dev.FamilyCode())
				devices = append(devices, *dev)
			}
			fmt.Printf("\n%d device(s) found\n", len(devices))

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				enc := json.NewEncoder(f)
				enc.SetIndent("", "  ")
				if err := enc.Encode(devices); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Printf("Written to %s\n", output)
			}
			return nil
		},
	}
	scanCmd.Flags().BoolVar(&sim, "sim", false, "Use an in-memory simulated bus with two sample devices")
	scanCmd.Flags().StringVar(&gpioPin, "gpio", "", "Host GPIO pin name (periph.io), e.g. GPIO4")
	scanCmd.Flags().StringVar(&serialPort, "serial", "", "Serial bridge adapter device path, e.g. /dev/ttyUSB0")
	scanCmd.Flags().BoolVar(&alarmOnly, "alarm", false, "Restrict the search to devices asserting an alarm condition")
	scanCmd.Flags().StringVar(&output, "output", "", "Write the discovered devices as JSON to this path")

	// crc command
	crcCmd := &cobra.Command{
		Use:   "crc [hex-bytes...]",
		Short: "Compute the 1-Wire CRC-8 of a sequence of hex bytes (no device address folded in)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHexBytes(args)
			if err != nil {
				return err
			}
			crc := onewire.ComputePartialCRC8(0, data)
			fmt.Printf("0x%02x\n", crc)
			return nil
		},
	}

	// scratchpad command
	var scratchpadAddr string
	scratchpadCmd := &cobra.Command{
		Use:   "scratchpad",
		Short: "Read a device's 9-byte scratchpad and verify its CRC-8",
		RunE: func(cmd *cobra.Command, args []string) error {
			if scratchpadAddr == "" {
				return fmt.Errorf("--address is required")
			}
			var addr onewire.Address
			if err := addr.UnmarshalText([]byte(scratchpadAddr)); err != nil {
				return fmt.Errorf("invalid --address: %w", err)
			}

			bits, closeFn, err := openBus(sim, gpioPin, serialPort)
			if err != nil {
				return err
			}
			defer closeFn()

			master := onewire.NewMaster(bits)
			pad, err := scratchpad.Read(master, onewire.Device{Address: addr})
			if err != nil {
				return fmt.Errorf("reading scratchpad: %w", err)
			}
			fmt.Printf("scratchpad: % x\n", pad.Bytes())
			return nil
		},
	}
	scratchpadCmd.Flags().StringVar(&scratchpadAddr, "address", "", "Device address, colon-separated hex (e.g. 28:ff:64:1e:a1:b4:e1:3c)")
	scratchpadCmd.Flags().BoolVar(&sim, "sim", false, "Use an in-memory simulated bus")
	scratchpadCmd.Flags().StringVar(&gpioPin, "gpio", "", "Host GPIO pin name (periph.io), e.g. GPIO4")
	scratchpadCmd.Flags().StringVar(&serialPort, "serial", "", "Serial bridge adapter device path")

	rootCmd.AddCommand(scanCmd, crcCmd, scratchpadCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// searchOne issues one round of the enumeration appropriate to alarmOnly.
func searchOne(master *onewire.Master, cursor *onewire.Search, alarmOnly bool) (*onewire.Device, error) {
	if alarmOnly {
		return master.SearchNextAlarmed(cursor)
	}
	return master.SearchNext(cursor)
}

// openBus picks exactly one backend: the simulator, a GPIO pin, or a serial
// bridge. Exactly one of sim/gpioPin/serialPort must be set.
func openBus(sim bool, gpioPin, serialPort string) (wire.BitDriver, func(), error) {
	selected := 0
	if sim {
		selected++
	}
	if gpioPin != "" {
		selected++
	}
	if serialPort != "" {
		selected++
	}
	switch {
	case selected == 0:
		return nil, nil, fmt.Errorf("specify exactly one of --sim, --gpio, or --serial")
	case selected > 1:
		return nil, nil, fmt.Errorf("--sim, --gpio, and --serial are mutually exclusive")
	}

	if sim {
		bus := &simbus.SearchBus{Slaves: []simbus.Slave{
			{Address: onewire.Address{0x28, 0xFF, 0x64, 0x1E, 0xA1, 0xB4, 0xE1, 0x3C}},
			{Address: onewire.Address{0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}},
		}}
		return bus, func() {}, nil
	}

	if gpioPin != "" {
		drv, err := gpio.Open(gpioPin)
		if err != nil {
			return nil, nil, fmt.Errorf("opening GPIO pin %s: %w", gpioPin, err)
		}
		return drv, func() { drv.Close() }, nil
	}

	drv, err := serial.Open(serialPort)
	if err != nil {
		return nil, nil, fmt.Errorf("opening serial adapter %s: %w", serialPort, err)
	}
	return drv, func() { drv.Close() }, nil
}

func parseHexBytes(args []string) ([]byte, error) {
	data := make([]byte, len(args))
	for i, a := range args {
		var v byte
		if _, err := fmt.Sscanf(a, "0x%x", &v); err != nil {
			if _, err := fmt.Sscanf(a, "%x", &v); err != nil {
				return nil, fmt.Errorf("invalid hex byte %q: %w", a, err)
			}
		}
		data[i] = v
	}
	return data, nil
}
