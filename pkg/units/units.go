// Package units validates and normalizes measurement units for vibration
// channels. Units identify the physical quantity (displacement in mil/mm/um,
// or raw volts); subunits identify the measurement convention (peak,
// peak-to-peak, RMS).
package units

import (
	"fmt"
	"strings"
)

// Valid units and their canonical spellings.
const (
	UnitMil    = "mil"
	UnitMM     = "mm"
	UnitUM     = "um"
	UnitVolt   = "v"
	SubunitPP  = "pp"
	SubunitPK  = "pk"
	SubunitRMS = "rms"
)

var validUnits = map[string]bool{
	UnitMil:  true,
	UnitMM:   true,
	UnitUM:   true,
	UnitVolt: true,
}

// subunitAliases maps common spellings to the canonical subunit.
var subunitAliases = map[string]string{
	"pp":               SubunitPP,
	"pk-pk":            SubunitPP,
	"pkpk":             SubunitPP,
	"p-p":              SubunitPP,
	"peak-to-peak":     SubunitPP,
	"peak to peak":     SubunitPP,
	"pk":               SubunitPK,
	"peak":             SubunitPK,
	"rms":              SubunitRMS,
	"root-mean-square": SubunitRMS,
}

// ErrInvalidUnit and ErrInvalidSubunit carry the offending value and the
// accepted set so handlers can surface them directly.
type ErrInvalidUnit struct{ Unit string }

func (e ErrInvalidUnit) Error() string {
	return fmt.Sprintf("invalid unit: %s. Supported units: mil, mm, um, v", e.Unit)
}

type ErrInvalidSubunit struct{ Subunit string }

func (e ErrInvalidSubunit) Error() string {
	return fmt.Sprintf("invalid subunit: %s. Supported subunits: pp, pk, rms", e.Subunit)
}

// NormalizeUnit lowercases and validates a unit value.
func NormalizeUnit(unit string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if !validUnits[u] {
		return "", ErrInvalidUnit{Unit: unit}
	}
	return u, nil
}

// NormalizeSubunit resolves a subunit through the alias table.
func NormalizeSubunit(subunit string) (string, error) {
	s, ok := subunitAliases[strings.ToLower(strings.TrimSpace(subunit))]
	if !ok {
		return "", ErrInvalidSubunit{Subunit: subunit}
	}
	return s, nil
}
