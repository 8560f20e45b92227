package hidraw

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/womat/debug"
)

// vendorName is the USB vendor string of the CO2MINI's HID interface.
const vendorName = "Holtek Semiconductor, Inc."

var ErrNotFound = errors.New("no matching hidraw device found")

// Find enumerates the hidraw nodes and returns the path of the first one
// whose udev properties name the Holtek vendor. Nodes udevadm cannot query
// are skipped.
func Find() (string, error) {
	nodes, err := filepath.Glob("/dev/hidraw*")
	if err != nil {
		return "", err
	}

	for _, node := range nodes {
		out, err := exec.Command("udevadm", "info", "--query=all", "--name="+node).Output()
		if err != nil {
			debug.TraceLog.Printf("udevadm %v: %v", node, err)
			continue
		}

		if matchVendor(string(out)) {
			debug.DebugLog.Printf("found co2 sensor on %v", node)
			return node, nil
		}
	}

	return "", ErrNotFound
}

// matchVendor reports whether udevadm output describes the CO2MINI vendor.
func matchVendor(info string) bool {
	return strings.Contains(info, vendorName)
}
