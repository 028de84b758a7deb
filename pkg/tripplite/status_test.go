package tripplite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dnanderson/TripLiteHID/pkg/tripplite"
)

func flagsOf(s tripplite.Status) [8]bool {
	return [8]bool{
		s.ShutdownImminent,
		s.ACPresent,
		s.Charging,
		s.Discharging,
		s.NeedsReplacement,
		s.BelowCapacityLimit,
		s.FullyCharged,
		s.FullyDischarged,
	}
}

func TestDecodeStatusBitIndependence(t *testing.T) {
	for b := 0; b < 256; b++ {
		flags := flagsOf(tripplite.DecodeStatus(byte(b)))
		for i := 0; i < 8; i++ {
			want := (b>>i)&1 == 1
			assert.Equalf(t, want, flags[i], "byte 0x%02x bit %d", b, i)
		}
	}
}

func TestDecodeStatusExamples(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		want [8]bool
	}{
		{
			name: "on line and topped off",
			b:    0b01000010,
			want: [8]bool{1: true, 6: true},
		},
		{
			name: "all clear",
			b:    0x00,
			want: [8]bool{},
		},
		{
			name: "all set",
			b:    0xFF,
			want: [8]bool{true, true, true, true, true, true, true, true},
		},
		{
			name: "on battery and draining",
			b:    0b00101000,
			want: [8]bool{3: true, 5: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flagsOf(tripplite.DecodeStatus(tt.b)))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "none", tripplite.DecodeStatus(0).String())
	assert.Equal(t, "ac-present,fully-charged", tripplite.DecodeStatus(0b01000010).String())
	assert.Equal(t,
		"shutdown-imminent,ac-present,charging,discharging,needs-replacement,below-capacity-limit,fully-charged,fully-discharged",
		tripplite.DecodeStatus(0xFF).String())
}
