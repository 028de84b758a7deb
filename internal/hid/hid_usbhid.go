//go:build !cgo && !windows

package hid

import (
	"fmt"
	"time"

	usbhid "rafaelmartins.com/p/usbhid"
)

// Pure Go fallback backend for builds without cgo.

type usbManager struct{}

func newManager() (Manager, error) { return &usbManager{}, nil }

func (m *usbManager) List(vendorID, productID uint16) ([]Info, error) {
	devs, err := usbhid.Enumerate(func(d *usbhid.Device) bool {
		if d.VendorId() != vendorID {
			return false
		}
		return productID == 0 || d.ProductId() == productID
	})
	if err != nil {
		return nil, fmt.Errorf("hid: enumerate: %w", err)
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
			SerialNumber: d.SerialNumber(),
		})
	}
	return out, nil
}

func (m *usbManager) Open(info Info) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.Path() == info.Path
	}, true, false)
	if err != nil {
		return nil, fmt.Errorf("hid: open %s: %w", info.Path, err)
	}
	return &usbDevice{d: d}, nil
}

type usbDevice struct {
	d       *usbhid.Device
	timeout time.Duration
}

func (d *usbDevice) GetFeature(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("hid: get feature report: empty buffer")
	}
	rid := buf[0]
	// The library validates and strips the report id at the hidraw layer,
	// returning payload bytes only; reassemble the full report here.
	payload, err := d.d.GetFeatureReport(rid)
	if err != nil {
		return fmt.Errorf("hid: get feature report: %w", err)
	}
	buf[0] = rid
	copy(buf[1:], payload)
	return nil
}

func (d *usbDevice) SetReadTimeout(t time.Duration) { d.timeout = t }
func (d *usbDevice) ReadTimeout() time.Duration     { return d.timeout }

func (d *usbDevice) Close() error { return d.d.Close() }
