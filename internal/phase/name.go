package phase

import "math"

// Name is one of the eight conventional phase names
type Name int

const (
	New Name = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	Full
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var names = [...]string{
	New:            "New Moon",
	WaxingCrescent: "Waxing Crescent",
	FirstQuarter:   "First Quarter",
	WaxingGibbous:  "Waxing Gibbous",
	Full:           "Full Moon",
	WaningGibbous:  "Waning Gibbous",
	LastQuarter:    "Last Quarter",
	WaningCrescent: "Waning Crescent",
}

func (n Name) String() string {
	if n < New || n > WaningCrescent {
		return "Unknown"
	}
	return names[n]
}

// NameFor discretizes a phase fraction into eight segments centred on the
// principal phases. Halfway points round away from zero.
func NameFor(fraction float64) Name {
	segment := int(math.Round(wrapFraction(fraction)*8)) % 8
	return Name(segment)
}

// Waxing reports whether the lit fraction is growing
func (n Name) Waxing() bool {
	return n >= WaxingCrescent && n <= WaxingGibbous
}
