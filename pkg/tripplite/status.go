package tripplite

import "strings"

// Status bit positions within the single status byte, bit 0 least
// significant.
const (
	statusShutdownImminent = 1 << iota
	statusACPresent
	statusCharging
	statusDischarging
	statusNeedsReplacement
	statusBelowCapacityLimit
	statusFullyCharged
	statusFullyDischarged
)

// Status is the decoded UPS status record. The eight flags are independent;
// every byte value is a legal encoding.
type Status struct {
	ShutdownImminent   bool
	ACPresent          bool
	Charging           bool
	Discharging        bool
	NeedsReplacement   bool
	BelowCapacityLimit bool
	FullyCharged       bool
	FullyDischarged    bool
}

// DecodeStatus builds a Status record from the raw status byte.
func DecodeStatus(b byte) Status {
	return Status{
		ShutdownImminent:   b&statusShutdownImminent != 0,
		ACPresent:          b&statusACPresent != 0,
		Charging:           b&statusCharging != 0,
		Discharging:        b&statusDischarging != 0,
		NeedsReplacement:   b&statusNeedsReplacement != 0,
		BelowCapacityLimit: b&statusBelowCapacityLimit != 0,
		FullyCharged:       b&statusFullyCharged != 0,
		FullyDischarged:    b&statusFullyDischarged != 0,
	}
}

// String renders the set flags, comma separated, or "none".
func (s Status) String() string {
	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{s.ShutdownImminent, "shutdown-imminent"},
		{s.ACPresent, "ac-present"},
		{s.Charging, "charging"},
		{s.Discharging, "discharging"},
		{s.NeedsReplacement, "needs-replacement"},
		{s.BelowCapacityLimit, "below-capacity-limit"},
		{s.FullyCharged, "fully-charged"},
		{s.FullyDischarged, "fully-discharged"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		return "none"
	}
	return strings.Join(flags, ",")
}
