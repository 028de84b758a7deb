package tripplite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnanderson/TripLiteHID/internal/hid"
	"github.com/dnanderson/TripLiteHID/internal/report"
	"github.com/dnanderson/TripLiteHID/pkg/tripplite"
)

func newTestUPS(t *testing.T, dev *hid.ScriptDevice) *tripplite.UPS {
	t.Helper()
	u, err := tripplite.New(dev, report.Config{Sleep: func(time.Duration) {}})
	require.NoError(t, err)
	return u
}

func TestAccessors(t *testing.T) {
	tests := []struct {
		name     string
		reportID byte
		payload  []byte
		read     func(u *tripplite.UPS) (any, error)
		want     any
	}{
		{
			name:     "nominal voltage raw byte",
			reportID: 48,
			payload:  []byte{120},
			read:     func(u *tripplite.UPS) (any, error) { return u.NominalVoltage() },
			want:     120,
		},
		{
			name:     "nominal frequency raw byte",
			reportID: 2,
			payload:  []byte{60},
			read:     func(u *tripplite.UPS) (any, error) { return u.NominalFrequency() },
			want:     60,
		},
		{
			name:     "power rating little-endian int16",
			reportID: 3,
			payload:  []byte{0xDC, 0x05}, // 1500
			read:     func(u *tripplite.UPS) (any, error) { return u.PowerRating() },
			want:     1500,
		},
		{
			name:     "input voltage scaled tenths",
			reportID: 24,
			payload:  []byte{0xB5, 0x04}, // 1205
			read:     func(u *tripplite.UPS) (any, error) { return u.InputVoltage() },
			want:     120.5,
		},
		{
			name:     "input frequency scaled tenths",
			reportID: 25,
			payload:  []byte{0x59, 0x02}, // 601
			read:     func(u *tripplite.UPS) (any, error) { return u.InputFrequency() },
			want:     60.1,
		},
		{
			name:     "output voltage scaled tenths",
			reportID: 27,
			payload:  []byte{0xAE, 0x04}, // 1198
			read:     func(u *tripplite.UPS) (any, error) { return u.OutputVoltage() },
			want:     119.8,
		},
		{
			name:     "output power watts",
			reportID: 71,
			payload:  []byte{0x2C, 0x01}, // 300
			read:     func(u *tripplite.UPS) (any, error) { return u.OutputPower() },
			want:     300,
		},
		{
			name:     "battery health percent",
			reportID: 52,
			payload:  []byte{87},
			read:     func(u *tripplite.UPS) (any, error) { return u.BatteryHealth() },
			want:     87,
		},
		{
			name:     "time to empty minutes",
			reportID: 53,
			payload:  []byte{0x2D, 0x00}, // 45
			read:     func(u *tripplite.UPS) (any, error) { return u.TimeToEmpty() },
			want:     45,
		},
		{
			name:     "negative int16 round trip",
			reportID: 53,
			payload:  []byte{0xFF, 0xFF}, // -1
			read:     func(u *tripplite.UPS) (any, error) { return u.TimeToEmpty() },
			want:     -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := hid.NewScriptDevice().Respond(tt.reportID, tt.payload...)
			u := newTestUPS(t, dev)

			got, err := tt.read(u)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, dev.Calls, 1)
			assert.Equal(t, tt.reportID, dev.Calls[0][0], "report id selector")
			assert.Len(t, dev.Calls[0], len(tt.payload)+1, "frame width")
		})
	}
}

func TestStatusAccessor(t *testing.T) {
	dev := hid.NewScriptDevice().Respond(50, 0b01000010)
	u := newTestUPS(t, dev)

	s, err := u.Status()
	require.NoError(t, err)
	assert.True(t, s.ACPresent)
	assert.True(t, s.FullyCharged)
	assert.False(t, s.Discharging)
	assert.False(t, s.ShutdownImminent)
}

func TestAccessorRecoversFromTransientFailure(t *testing.T) {
	dev := hid.NewScriptDevice().
		Fail(errors.New("usb: transfer stalled")).
		Respond(24, 0xB5, 0x04)
	u := newTestUPS(t, dev)

	v, err := u.InputVoltage()
	require.NoError(t, err)
	assert.Equal(t, 120.5, v)
	assert.Len(t, dev.Calls, 2)
}

func TestAccessorSurfacesPersistentFailure(t *testing.T) {
	ioErr := errors.New("usb: device gone")
	dev := hid.NewScriptDevice().Fail(ioErr).Fail(ioErr).Fail(ioErr)
	u := newTestUPS(t, dev)

	_, err := u.BatteryHealth()
	require.Error(t, err)
	assert.ErrorIs(t, err, ioErr)
	assert.Len(t, dev.Calls, report.DefaultMaxRetries)
}

func TestSnapshot(t *testing.T) {
	dev := hid.NewScriptDevice().
		Respond(48, 120).
		Respond(2, 60).
		Respond(3, 0xDC, 0x05).
		Respond(50, 0b01000010).
		Respond(24, 0xB5, 0x04).
		Respond(25, 0x59, 0x02).
		Respond(27, 0xAE, 0x04).
		Respond(71, 0x2C, 0x01).
		Respond(52, 87).
		Respond(53, 0x2D, 0x00)
	u := newTestUPS(t, dev)

	s, err := u.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, tripplite.Snapshot{
		NominalVoltage:   120,
		NominalFrequency: 60,
		PowerRating:      1500,
		Status:           tripplite.DecodeStatus(0b01000010),
		InputVoltage:     120.5,
		InputFrequency:   60.1,
		OutputVoltage:    119.8,
		OutputPower:      300,
		BatteryHealth:    87,
		TimeToEmpty:      45,
	}, s)
	assert.Len(t, dev.Calls, 10)
}

func TestSnapshotStopsAtFirstFailure(t *testing.T) {
	ioErr := errors.New("usb: device gone")
	dev := hid.NewScriptDevice().
		Respond(48, 120).
		Respond(2, 60).
		Fail(ioErr).Fail(ioErr).Fail(ioErr)
	u := newTestUPS(t, dev)

	_, err := u.Snapshot()
	require.Error(t, err)
	assert.ErrorIs(t, err, ioErr)
}
