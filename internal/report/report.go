// Package report implements the framed feature-report transaction layer of
// the Tripp Lite HID protocol: one request/response round trip per call,
// report id echo validation, and bounded paced retry on transient I/O
// failures.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dnanderson/TripLiteHID/internal/hid"
)

// Errors returned from this package may be tested with errors.Is.
var (
	ErrClosed  = errors.New("report: device handle is closed")
	ErrBadEcho = errors.New("report: report id echo mismatch")
)

// Defaults for Config fields left zero.
const (
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 50 * time.Millisecond
	DefaultReadTimeout = 3000 * time.Millisecond
)

// Config bounds a channel's blocking behavior. Zero fields take the
// package defaults above.
type Config struct {
	// MaxRetries is the total attempt budget per transaction, the first
	// attempt included.
	MaxRetries int
	// RetryDelay is the fixed pause between attempts. The UPS link shows
	// rare short glitches, not sustained outages, so attempts are paced
	// flat rather than backed off.
	RetryDelay time.Duration
	// ReadTimeout bounds each blocking get-feature call on the transport.
	ReadTimeout time.Duration
	// Sleep replaces time.Sleep between attempts when non-nil, so tests
	// can run the retry path without real delays.
	Sleep func(time.Duration)
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	return c
}

// Channel owns an open HID device and performs framed feature-report reads
// against it. It is not internally synchronized; callers serialize access.
type Channel struct {
	dev    hid.Device
	cfg    Config
	closed bool
}

// NewChannel wraps a live device handle. The device's read timeout is set
// immediately so every transaction is bounded from the first call.
func NewChannel(dev hid.Device, cfg Config) (*Channel, error) {
	if dev == nil {
		return nil, errors.New("report: nil device")
	}
	cfg = cfg.withDefaults()
	dev.SetReadTimeout(cfg.ReadTimeout)
	return &Channel{dev: dev, cfg: cfg}, nil
}

// Config returns the effective configuration, defaults applied.
func (c *Channel) Config() Config { return c.cfg }

// ReadFeature executes one framed read: a buffer of payloadLen+1 bytes is
// sent with reportID in byte 0, the transport overwrites it in place, and
// the payload (byte 0 stripped) is returned in a fresh slice.
//
// Transport failures and echo mismatches are retried up to the configured
// attempt budget with a fixed delay between attempts; the last cause is
// surfaced after exhaustion. All other failures return immediately.
func (c *Channel) ReadFeature(reportID byte, payloadLen int) ([]byte, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if payloadLen < 0 {
		return nil, fmt.Errorf("report: negative payload length %d", payloadLen)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			c.cfg.Sleep(c.cfg.RetryDelay)
		}

		buf := make([]byte, payloadLen+1)
		buf[0] = reportID
		if err := c.dev.GetFeature(buf); err != nil {
			lastErr = err
			slog.Debug("feature report attempt failed",
				slog.Int("report_id", int(reportID)),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
			continue
		}

		// The device echoes the report id in byte 0; anything else means
		// the response belongs to a different frame and is treated like a
		// transport glitch.
		if buf[0] != reportID {
			lastErr = fmt.Errorf("%w: want 0x%02x, got 0x%02x", ErrBadEcho, reportID, buf[0])
			slog.Debug("feature report echo mismatch",
				slog.Int("report_id", int(reportID)),
				slog.Int("attempt", attempt),
				slog.Int("echo", int(buf[0])))
			continue
		}

		payload := make([]byte, payloadLen)
		copy(payload, buf[1:])
		return payload, nil
	}

	return nil, fmt.Errorf("report: read report 0x%02x failed after %d attempts: %w",
		reportID, c.cfg.MaxRetries, lastErr)
}

// Close releases the underlying stream. Repeated calls are no-ops; the
// stream is closed exactly once.
func (c *Channel) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dev.Close()
}
