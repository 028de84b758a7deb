package hid

import (
	"errors"
	"time"
)

// ScriptDevice is an in-memory Device for tests. Each GetFeature call
// consumes the next scripted step in order; running past the script fails.
type ScriptDevice struct {
	steps []ScriptStep

	Calls      [][]byte // copy of the buffer as submitted, per call
	CloseCount int
	timeout    time.Duration
}

// ScriptStep describes one GetFeature outcome: Err when non-nil, otherwise
// Fill overwrites the submitted buffer (report id byte included).
type ScriptStep struct {
	Fill []byte
	Err  error
}

func NewScriptDevice(steps ...ScriptStep) *ScriptDevice {
	return &ScriptDevice{steps: steps}
}

// Respond appends a successful step echoing reportID with the given payload.
func (d *ScriptDevice) Respond(reportID byte, payload ...byte) *ScriptDevice {
	fill := append([]byte{reportID}, payload...)
	d.steps = append(d.steps, ScriptStep{Fill: fill})
	return d
}

// Fail appends a failing step.
func (d *ScriptDevice) Fail(err error) *ScriptDevice {
	d.steps = append(d.steps, ScriptStep{Err: err})
	return d
}

func (d *ScriptDevice) GetFeature(buf []byte) error {
	sent := make([]byte, len(buf))
	copy(sent, buf)
	d.Calls = append(d.Calls, sent)

	if len(d.steps) == 0 {
		return errors.New("script device: unexpected GetFeature call")
	}
	step := d.steps[0]
	d.steps = d.steps[1:]
	if step.Err != nil {
		return step.Err
	}
	copy(buf, step.Fill)
	return nil
}

func (d *ScriptDevice) SetReadTimeout(t time.Duration) { d.timeout = t }
func (d *ScriptDevice) ReadTimeout() time.Duration     { return d.timeout }

func (d *ScriptDevice) Close() error {
	d.CloseCount++
	return nil
}

// ScriptManager is an in-memory Manager serving a fixed device list.
type ScriptManager struct {
	Devices []Info
	Opened  *ScriptDevice
	OpenErr error
}

func (m *ScriptManager) List(vendorID, productID uint16) ([]Info, error) {
	var out []Info
	for _, d := range m.Devices {
		if d.VendorID != vendorID {
			continue
		}
		if productID != 0 && d.ProductID != productID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *ScriptManager) Open(info Info) (Device, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if m.Opened == nil {
		m.Opened = NewScriptDevice()
	}
	return m.Opened, nil
}
