// Package hidraw accesses raw HID device nodes (/dev/hidraw*) and sends the
// feature report that unlocks streaming reads on the CO2MINI class of
// devices.
package hidraw

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// hidiocSFeature9 is the HIDIOCSFEATURE ioctl request for a 9 byte report,
// one report id byte plus 8 payload bytes.
const hidiocSFeature9 = 0xC0094806

// Device is an exclusively owned handle to one hidraw node. It satisfies
// io.ReadCloser so frame decoders can consume it directly.
type Device struct {
	f *os.File
}

// Open opens the hidraw node for unbuffered read/write and sends key as
// feature report 0. The handshake is performed exactly once, before any
// read. On handshake failure the node is closed again.
func Open(path string, key []byte) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	d := &Device{f: f}
	if err := d.setFeatureReport(0, key); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("feature report handshake on %q: %w", path, err)
	}

	return d, nil
}

// setFeatureReport issues a HIDIOCSFEATURE ioctl with the report id followed
// by the payload.
func (d *Device) setFeatureReport(id byte, payload []byte) error {
	report := append([]byte{id}, payload...)

	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		d.f.Fd(),
		uintptr(hidiocSFeature9),
		uintptr(unsafe.Pointer(&report[0])),
	)
	if errno != 0 {
		return errno
	}

	return nil
}

// Read fills b with the next report, blocking until the device delivers
// data or errors.
func (d *Device) Read(b []byte) (int, error) {
	return d.f.Read(b)
}

// Close releases the device node. A read blocked in another goroutine
// returns with an error.
func (d *Device) Close() error {
	return d.f.Close()
}
