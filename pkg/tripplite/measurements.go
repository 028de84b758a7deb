package tripplite

import "encoding/binary"

// Feature report ids per the Tripp Lite vendor protocol.
const (
	reportNominalVoltage   byte = 48
	reportNominalFrequency byte = 2
	reportPowerRating      byte = 3
	reportStatus           byte = 50
	reportInputVoltage     byte = 24
	reportInputFrequency   byte = 25
	reportOutputVoltage    byte = 27
	reportOutputPower      byte = 71
	reportBatteryHealth    byte = 52
	reportTimeToEmpty      byte = 53
)

func (u *UPS) readByte(id byte) (byte, error) {
	payload, err := u.ch.ReadFeature(id, 1)
	if err != nil {
		return 0, err
	}
	return payload[0], nil
}

func (u *UPS) readInt16(id byte) (int16, error) {
	payload, err := u.ch.ReadFeature(id, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(payload)), nil
}

// readDeci reads a 16-bit value carried in tenths of its unit.
func (u *UPS) readDeci(id byte) (float64, error) {
	v, err := u.readInt16(id)
	if err != nil {
		return 0, err
	}
	return float64(v) / 10.0, nil
}

// NominalVoltage reads the configured nominal output voltage in volts.
func (u *UPS) NominalVoltage() (int, error) {
	b, err := u.readByte(reportNominalVoltage)
	return int(b), err
}

// NominalFrequency reads the configured nominal line frequency in Hz.
func (u *UPS) NominalFrequency() (int, error) {
	b, err := u.readByte(reportNominalFrequency)
	return int(b), err
}

// PowerRating reads the configured power rating in watts.
func (u *UPS) PowerRating() (int, error) {
	v, err := u.readInt16(reportPowerRating)
	return int(v), err
}

// Status reads and decodes the status record.
func (u *UPS) Status() (Status, error) {
	b, err := u.readByte(reportStatus)
	if err != nil {
		return Status{}, err
	}
	return DecodeStatus(b), nil
}

// InputVoltage reads the present input voltage in volts.
func (u *UPS) InputVoltage() (float64, error) {
	return u.readDeci(reportInputVoltage)
}

// InputFrequency reads the present input frequency in Hz.
func (u *UPS) InputFrequency() (float64, error) {
	return u.readDeci(reportInputFrequency)
}

// OutputVoltage reads the present output voltage in volts.
func (u *UPS) OutputVoltage() (float64, error) {
	return u.readDeci(reportOutputVoltage)
}

// OutputPower reads the present output load in watts.
func (u *UPS) OutputPower() (int, error) {
	v, err := u.readInt16(reportOutputPower)
	return int(v), err
}

// BatteryHealth reads the battery health percentage.
func (u *UPS) BatteryHealth() (int, error) {
	b, err := u.readByte(reportBatteryHealth)
	return int(b), err
}

// TimeToEmpty reads the estimated runtime remaining in minutes.
func (u *UPS) TimeToEmpty() (int, error) {
	v, err := u.readInt16(reportTimeToEmpty)
	return int(v), err
}

// Snapshot holds one reading of every field. The fields are read one
// transaction at a time, so a snapshot is not atomic with respect to the
// device; values may straddle a state change.
type Snapshot struct {
	NominalVoltage   int
	NominalFrequency int
	PowerRating      int
	Status           Status
	InputVoltage     float64
	InputFrequency   float64
	OutputVoltage    float64
	OutputPower      int
	BatteryHealth    int
	TimeToEmpty      int
}

// Snapshot reads all fields sequentially, stopping at the first failure.
func (u *UPS) Snapshot() (Snapshot, error) {
	var s Snapshot
	var err error
	if s.NominalVoltage, err = u.NominalVoltage(); err != nil {
		return Snapshot{}, err
	}
	if s.NominalFrequency, err = u.NominalFrequency(); err != nil {
		return Snapshot{}, err
	}
	if s.PowerRating, err = u.PowerRating(); err != nil {
		return Snapshot{}, err
	}
	if s.Status, err = u.Status(); err != nil {
		return Snapshot{}, err
	}
	if s.InputVoltage, err = u.InputVoltage(); err != nil {
		return Snapshot{}, err
	}
	if s.InputFrequency, err = u.InputFrequency(); err != nil {
		return Snapshot{}, err
	}
	if s.OutputVoltage, err = u.OutputVoltage(); err != nil {
		return Snapshot{}, err
	}
	if s.OutputPower, err = u.OutputPower(); err != nil {
		return Snapshot{}, err
	}
	if s.BatteryHealth, err = u.BatteryHealth(); err != nil {
		return Snapshot{}, err
	}
	if s.TimeToEmpty, err = u.TimeToEmpty(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
