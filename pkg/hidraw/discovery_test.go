package hidraw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchVendor(t *testing.T) {
	holtek := `P: /devices/pci0000:00/0000:00:14.0/usb1/1-2/1-2:1.0/0003:04D9:A052.0005/hidraw/hidraw0
N: hidraw0
E: DEVNAME=/dev/hidraw0
E: ID_VENDOR_FROM_DATABASE=Holtek Semiconductor, Inc.
E: SUBSYSTEM=hidraw`

	keyboard := `P: /devices/pci0000:00/0000:00:14.0/usb1/1-3/1-3:1.1/0003:046D:C31C.0003/hidraw/hidraw1
N: hidraw1
E: DEVNAME=/dev/hidraw1
E: ID_VENDOR_FROM_DATABASE=Logitech, Inc.
E: SUBSYSTEM=hidraw`

	assert.True(t, matchVendor(holtek))
	assert.False(t, matchVendor(keyboard))
	assert.False(t, matchVendor(""))
}
