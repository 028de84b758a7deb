package hid

import "time"

// Device represents an opened HID device capable of feature-report I/O.
//
// GetFeature performs one feature-report transaction: byte 0 of buf selects
// the report id on the way out and is overwritten in place by the device's
// echo on the way back, with the payload following in buf[1:]. The call
// blocks for at most the configured read timeout.
type Device interface {
	GetFeature(buf []byte) error
	SetReadTimeout(d time.Duration)
	ReadTimeout() time.Duration
	Close() error
}

// Info represents a HID device descriptor.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
	SerialNumber string
}

// Manager enumerates and opens HID devices.
type Manager interface {
	// List returns devices matching vendorID, and productID when non-zero,
	// in transport-defined order.
	List(vendorID, productID uint16) ([]Info, error)
	Open(info Info) (Device, error)
}

// NewManager returns the OS-specific HID manager.
func NewManager() (Manager, error) {
	return newManager()
}
