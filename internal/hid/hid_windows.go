//go:build windows

package hid

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows HID implementation using pure Go syscalls (no CGO).
// Enumeration goes through SetupAPI; feature reports go through HidD_GetFeature.

var (
	hiddll   = windows.NewLazySystemDLL("hid.dll")
	setupapi = windows.NewLazySystemDLL("setupapi.dll")

	procHidD_GetHidGuid                  = hiddll.NewProc("HidD_GetHidGuid")
	procHidD_GetAttributes               = hiddll.NewProc("HidD_GetAttributes")
	procHidD_GetProductString            = hiddll.NewProc("HidD_GetProductString")
	procHidD_GetManufacturerString       = hiddll.NewProc("HidD_GetManufacturerString")
	procHidD_GetSerialNumberString       = hiddll.NewProc("HidD_GetSerialNumberString")
	procHidD_GetFeature                  = hiddll.NewProc("HidD_GetFeature")
	procSetupDiGetClassDevsW             = setupapi.NewProc("SetupDiGetClassDevsW")
	procSetupDiEnumDeviceInterfaces      = setupapi.NewProc("SetupDiEnumDeviceInterfaces")
	procSetupDiGetDeviceInterfaceDetailW = setupapi.NewProc("SetupDiGetDeviceInterfaceDetailW")
	procSetupDiDestroyDeviceInfoList     = setupapi.NewProc("SetupDiDestroyDeviceInfoList")
)

const (
	DIGCF_PRESENT         = 0x00000002
	DIGCF_DEVICEINTERFACE = 0x00000010
	INVALID_HANDLE_VALUE  = ^uintptr(0)
)

type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

type HIDD_ATTRIBUTES struct {
	Size          uint32
	VendorID      uint16
	ProductID     uint16
	VersionNumber uint16
}

type SP_DEVICE_INTERFACE_DATA struct {
	CbSize             uint32
	InterfaceClassGuid GUID
	Flags              uint32
	Reserved           uintptr
}

type SP_DEVICE_INTERFACE_DETAIL_DATA struct {
	CbSize     uint32
	DevicePath [1]uint16 // Variable length
}

type winManager struct{}

func newManager() (Manager, error) {
	return &winManager{}, nil
}

func (m *winManager) List(vendorID, productID uint16) ([]Info, error) {
	var hidGuid GUID
	procHidD_GetHidGuid.Call(uintptr(unsafe.Pointer(&hidGuid)))

	devInfo, _, err := procSetupDiGetClassDevsW.Call(
		uintptr(unsafe.Pointer(&hidGuid)),
		0,
		0,
		DIGCF_PRESENT|DIGCF_DEVICEINTERFACE,
	)
	if devInfo == 0 || devInfo == INVALID_HANDLE_VALUE {
		return nil, fmt.Errorf("hid: SetupDiGetClassDevsW failed: %v", err)
	}
	defer procSetupDiDestroyDeviceInfoList.Call(devInfo)

	var devices []Info
	var devInterfaceData SP_DEVICE_INTERFACE_DATA
	devInterfaceData.CbSize = uint32(unsafe.Sizeof(devInterfaceData))

	for i := uint32(0); ; i++ {
		r, _, _ := procSetupDiEnumDeviceInterfaces.Call(
			devInfo,
			0,
			uintptr(unsafe.Pointer(&hidGuid)),
			uintptr(i),
			uintptr(unsafe.Pointer(&devInterfaceData)),
		)
		if r == 0 {
			break
		}

		var requiredSize uint32
		procSetupDiGetDeviceInterfaceDetailW.Call(
			devInfo,
			uintptr(unsafe.Pointer(&devInterfaceData)),
			0,
			0,
			uintptr(unsafe.Pointer(&requiredSize)),
			0,
		)

		detailData := make([]byte, requiredSize)
		detail := (*SP_DEVICE_INTERFACE_DETAIL_DATA)(unsafe.Pointer(&detailData[0]))
		// CbSize is sizeof(SP_DEVICE_INTERFACE_DETAIL_DATA), which differs
		// between 32- and 64-bit Windows because of struct padding.
		if unsafe.Sizeof(uintptr(0)) == 8 {
			detail.CbSize = 8
		} else {
			detail.CbSize = 6
		}

		r, _, _ = procSetupDiGetDeviceInterfaceDetailW.Call(
			devInfo,
			uintptr(unsafe.Pointer(&devInterfaceData)),
			uintptr(unsafe.Pointer(detail)),
			uintptr(requiredSize),
			0,
			0,
		)
		if r == 0 {
			continue
		}

		pathPtr := &detail.DevicePath[0]
		path := windows.UTF16PtrToString(pathPtr)

		// Open without access rights just to query attributes.
		h, err := windows.CreateFile(
			pathPtr,
			0,
			windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
			nil,
			windows.OPEN_EXISTING,
			0,
			0,
		)
		if err != nil {
			continue
		}

		var attrs HIDD_ATTRIBUTES
		attrs.Size = uint32(unsafe.Sizeof(attrs))
		r, _, _ = procHidD_GetAttributes.Call(uintptr(h), uintptr(unsafe.Pointer(&attrs)))
		if r == 0 || attrs.VendorID != vendorID || (productID != 0 && attrs.ProductID != productID) {
			windows.CloseHandle(h)
			continue
		}

		mfr := make([]uint16, 256)
		procHidD_GetManufacturerString.Call(uintptr(h), uintptr(unsafe.Pointer(&mfr[0])), uintptr(len(mfr)*2))

		prod := make([]uint16, 256)
		procHidD_GetProductString.Call(uintptr(h), uintptr(unsafe.Pointer(&prod[0])), uintptr(len(prod)*2))

		serial := make([]uint16, 256)
		procHidD_GetSerialNumberString.Call(uintptr(h), uintptr(unsafe.Pointer(&serial[0])), uintptr(len(serial)*2))

		windows.CloseHandle(h)

		devices = append(devices, Info{
			Path:         path,
			VendorID:     attrs.VendorID,
			ProductID:    attrs.ProductID,
			Manufacturer: windows.UTF16ToString(mfr),
			Product:      windows.UTF16ToString(prod),
			SerialNumber: windows.UTF16ToString(serial),
		})
	}

	return devices, nil
}

func (m *winManager) Open(info Info) (Device, error) {
	pathPtr, err := windows.UTF16PtrFromString(info.Path)
	if err != nil {
		return nil, err
	}

	h, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0, // Synchronous I/O
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("hid: CreateFile failed: %v", err)
	}

	return &winDevice{handle: h, path: info.Path}, nil
}

type winDevice struct {
	handle  windows.Handle
	path    string
	timeout time.Duration
}

func (d *winDevice) GetFeature(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("hid: get feature report: empty buffer")
	}
	// HidD_GetFeature fills the caller's buffer in place; buf[0] selects
	// the report id going out and carries the echo coming back.
	r, _, err := procHidD_GetFeature.Call(
		uintptr(d.handle),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if r == 0 {
		return fmt.Errorf("hid: HidD_GetFeature failed: %v", err)
	}
	return nil
}

// Feature transactions complete synchronously through the class driver;
// the timeout is recorded for callers sizing their retry budget.
func (d *winDevice) SetReadTimeout(t time.Duration) { d.timeout = t }
func (d *winDevice) ReadTimeout() time.Duration     { return d.timeout }

func (d *winDevice) Close() error {
	return windows.CloseHandle(d.handle)
}
