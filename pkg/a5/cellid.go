package a5

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CellID is the 64-bit address of a cell
type CellID uint64

// String returns the hexadecimal form of the id
func (id CellID) String() string {
	return ToHex(id)
}

// Resolution returns the resolution encoded in the id, -1 for ids without a
// marker bit
func (id CellID) Resolution() int {
	return GetResolution(id)
}

// Parent returns the cell one resolution coarser
func (id CellID) Parent() (CellID, error) {
	return CellToParent(id)
}

// Children returns the cells one resolution finer
func (id CellID) Children() ([]CellID, error) {
	return CellToChildren(id)
}

// MarshalText encodes the id as hex so JSON carries it without loss
func (id CellID) MarshalText() ([]byte, error) {
	return []byte(ToHex(id)), nil
}

// UnmarshalText accepts the form produced by MarshalText
func (id *CellID) UnmarshalText(text []byte) error {
	v, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ToHex formats an id as lowercase hexadecimal without leading zeros or
// prefix
func ToHex(id CellID) string {
	return strconv.FormatUint(uint64(id), 16)
}

// FromHex parses the output of ToHex. An optional 0x prefix is accepted.
func FromHex(s string) (CellID, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if digits == "" || len(digits) > 16 {
		return 0, errors.Wrapf(ErrInvalidInput, "malformed hex id %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "malformed hex id %q", s)
	}
	return CellID(v), nil
}
