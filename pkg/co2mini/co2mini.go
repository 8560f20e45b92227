// Package co2mini is the driver for the CO2MINI USB CO2 sensor, a Holtek HID
// device exposed as a hidraw node. After a one time feature report handshake
// the device streams 8 byte measurement frames which a background poller
// decodes into the last known values per operation code.
//
// See: https://hackaday.io/project/5301-reverse-engineering-a-low-cost-usb-co-monitor
package co2mini

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"co2mon/pkg/hidraw"

	"github.com/womat/debug"
)

// Key is the fixed vendor key sent once as feature report to unlock
// streaming reads. The device never requires decrypting the stream with it,
// payloads arrive in plaintext.
var Key = []byte{0xC4, 0xC6, 0xC0, 0x92, 0x40, 0x23, 0xDC, 0x96}

// readRetryDelay throttles the poller after a failed device read.
const readRetryDelay = time.Second

// Sensor is the handle to one CO2MINI device. The poller started by New
// observes only the liveness of the Sensor, so dropping the last reference
// stops polling and releases the device without an explicit close call.
type Sensor struct {
	*sensor
}

// sensor holds the state shared with the poller. It must not refer back to
// the Sensor wrapper, otherwise the wrapper could never become unreachable
// while the poller runs.
type sensor struct {
	rc io.ReadCloser

	// alive is cleared by the Sensor finalizer and checked by the poller
	// each iteration.
	alive int32

	mu     sync.RWMutex
	values map[byte]uint16
}

// Open opens the hidraw node, performs the feature report handshake with the
// vendor key and starts the background poller. If open or handshake fails no
// poller is started and the error is returned.
func Open(device string) (*Sensor, error) {
	dev, err := hidraw.Open(device, Key)
	if err != nil {
		return nil, fmt.Errorf("open co2mini %q: %w", device, err)
	}

	return New(dev), nil
}

// New wraps an already unlocked frame source and starts the background
// poller. The poller runs until the returned Sensor becomes unreachable,
// then rc is closed.
func New(rc io.ReadCloser) *Sensor {
	inner := &sensor{
		rc:    rc,
		alive: 1,
		values: map[byte]uint16{
			OpCO2:         0,
			OpTemperature: 0,
			OpHumidity:    0,
		},
	}

	go inner.poll()

	s := &Sensor{inner}
	runtime.SetFinalizer(s, (*Sensor).stop)

	debug.DebugLog.Print("co2mini sensor is starting...")
	return s
}

// stop runs as finalizer once the Sensor is unreachable. Closing the device
// unblocks a pending read so the poller notices the cleared liveness flag.
func (s *Sensor) stop() {
	atomic.StoreInt32(&s.sensor.alive, 0)
	_ = s.sensor.rc.Close()
}

// ReadData performs one synchronous read/decode/update cycle. It reports
// false on a device I/O failure. A frame failing the checksum has been
// logged and discarded and still counts as a completed cycle.
func (s *Sensor) ReadData() bool {
	err := s.sensor.readFrame()
	return err == nil || errors.Is(err, ErrChecksum)
}

// CO2 returns the last CO2 concentration in ppm.
func (s *Sensor) CO2() uint16 {
	return s.sensor.get(OpCO2)
}

// Temperature returns the last temperature in °C. The sensor reports
// sixteenths of a Kelvin.
func (s *Sensor) Temperature() float64 {
	return float64(s.sensor.get(OpTemperature))/16.0 - 273.15
}

// Humidity returns the last relative humidity in percent. Not all device
// revisions report humidity, those stay at 0.
func (s *Sensor) Humidity() float64 {
	return float64(s.sensor.get(OpHumidity)) / 100.0
}

// poll reads frames until the owning Sensor is gone. Failed reads skip the
// cycle and are retried, the loop itself only ends on the liveness check.
func (c *sensor) poll() {
	for atomic.LoadInt32(&c.alive) == 1 {
		err := c.readFrame()
		if err == nil || errors.Is(err, ErrChecksum) {
			continue
		}

		if atomic.LoadInt32(&c.alive) == 0 {
			break
		}

		debug.ErrorLog.Printf("read frame: %v", err)
		time.Sleep(readRetryDelay)
	}

	debug.DebugLog.Print("co2mini poller stopped")
}

// readFrame reads exactly one frame, decodes it and stores the sample.
// Unknown operation codes are stored verbatim.
func (c *sensor) readFrame() error {
	b := make([]byte, FrameSize)
	if _, err := io.ReadFull(c.rc, b); err != nil {
		return err
	}

	s, err := Decode(b)
	if err != nil {
		debug.ErrorLog.Printf("% X: %v", b, err)
		return err
	}

	c.mu.Lock()
	c.values[s.Op] = s.Value
	c.mu.Unlock()

	return nil
}

func (c *sensor) get(op byte) uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.values[op]
}
