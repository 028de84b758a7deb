//go:build cgo && !windows

package hid

import (
	"fmt"
	"time"

	gohid "github.com/sstallion/go-hid"
)

// hidapi-backed manager. hidapi's hid_get_feature_report passes the raw
// report buffer through, report id echo included, which is exactly the
// framing the driver validates against.

type gohidManager struct{}

func newManager() (Manager, error) {
	if err := gohid.Init(); err != nil {
		return nil, fmt.Errorf("hid: init: %w", err)
	}
	return &gohidManager{}, nil
}

func (m *gohidManager) List(vendorID, productID uint16) ([]Info, error) {
	var out []Info
	err := gohid.Enumerate(vendorID, productID, func(info *gohid.DeviceInfo) error {
		out = append(out, Info{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Product:      info.ProductStr,
			Manufacturer: info.MfrStr,
			SerialNumber: info.SerialNbr,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid: enumerate: %w", err)
	}
	return out, nil
}

func (m *gohidManager) Open(info Info) (Device, error) {
	d, err := gohid.OpenPath(info.Path)
	if err != nil {
		return nil, fmt.Errorf("hid: open %s: %w", info.Path, err)
	}
	return &gohidDevice{d: d}, nil
}

type gohidDevice struct {
	d       *gohid.Device
	timeout time.Duration
}

func (d *gohidDevice) GetFeature(buf []byte) error {
	n, err := d.d.GetFeatureReport(buf)
	if err != nil {
		return fmt.Errorf("hid: get feature report: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("hid: get feature report: empty transfer")
	}
	return nil
}

// Feature reports travel on the control endpoint, which hidapi bounds
// internally; the timeout is recorded so callers can size their retry
// budget against it.
func (d *gohidDevice) SetReadTimeout(t time.Duration) { d.timeout = t }
func (d *gohidDevice) ReadTimeout() time.Duration     { return d.timeout }

func (d *gohidDevice) Close() error { return d.d.Close() }
