// Package tripplite reads the operating state of Tripp Lite UPS units over
// their vendor-specific USB HID feature-report protocol.
//
// Every accessor performs a fresh feature-report transaction against the
// device; there is no caching and no atomic multi-field read. A UPS value
// is not internally synchronized, so callers invoking accessors from
// multiple goroutines must serialize access themselves.
package tripplite

import (
	"errors"
	"fmt"

	"github.com/dnanderson/TripLiteHID/internal/hid"
	"github.com/dnanderson/TripLiteHID/internal/report"
)

// Default discovery identity.
const (
	TrippLiteVID uint16 = 0x09ae
	DefaultPID   uint16 = 0x2012
)

// Errors returned from this package may be tested with errors.Is.
var (
	ErrNoDevice = errors.New("tripplite: no matching device found")
)

// UPS is a driver instance bound to one open device handle.
type UPS struct {
	ch *report.Channel
}

// New wraps a live device handle. The handle becomes exclusively owned by
// the returned UPS and is released by Close.
func New(dev hid.Device, cfg report.Config) (*UPS, error) {
	ch, err := report.NewChannel(dev, cfg)
	if err != nil {
		return nil, fmt.Errorf("tripplite: %w", err)
	}
	return &UPS{ch: ch}, nil
}

// Open auto-discovers a UPS with the default vendor and product id and
// binds to the first match.
func Open(mgr hid.Manager, cfg report.Config) (*UPS, error) {
	return open(mgr, TrippLiteVID, DefaultPID, cfg)
}

// OpenID discovers a UPS by a "vendorId:productId" hex identifier string,
// e.g. "09ae:2012".
func OpenID(mgr hid.Manager, id string, cfg report.Config) (*UPS, error) {
	vid, pid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return open(mgr, vid, pid, cfg)
}

func open(mgr hid.Manager, vid, pid uint16, cfg report.Config) (*UPS, error) {
	infos, err := mgr.List(vid, pid)
	if err != nil {
		return nil, fmt.Errorf("tripplite: enumerate: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w (%04x:%04x)", ErrNoDevice, vid, pid)
	}
	dev, err := mgr.Open(infos[0])
	if err != nil {
		return nil, fmt.Errorf("tripplite: open %s: %w", infos[0].Path, err)
	}
	return New(dev, cfg)
}

// Close releases the device handle. Repeated calls are no-ops; any accessor
// call after Close fails with report.ErrClosed.
func (u *UPS) Close() error {
	return u.ch.Close()
}
