package tripplite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyID     = errors.New("tripplite: empty device identifier")
	ErrMalformedID = errors.New("tripplite: malformed device identifier")
)

// ParseID parses a "<hex vendorId>:<hex productId>" identifier string,
// e.g. "09ae:2012".
func ParseID(s string) (vid, pid uint16, err error) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, ErrEmptyID
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q: want vendorId:productId", ErrMalformedID, s)
	}
	v, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: vendor id %q is not 16-bit hex", ErrMalformedID, parts[0])
	}
	p, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: product id %q is not 16-bit hex", ErrMalformedID, parts[1])
	}
	return uint16(v), uint16(p), nil
}
