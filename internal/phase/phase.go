// Package phase computes the lunar phase from a timestamp. The default model
// takes the elongation between the apparent ecliptic longitudes of the Sun and
// Moon (a short Meeus-style series). The simple model counts mean synodic
// months from a reference new moon.
package phase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// SynodicMonth is the mean new-moon-to-new-moon period in days
const SynodicMonth = 29.53058867

// KnownNewMoonUnix is the reference new moon of 2000-01-06 18:14 UTC
const KnownNewMoonUnix = 947182440

// j2000 is the Julian Day of the J2000.0 epoch
const j2000 = 2451545.0

// KnownNewMoon is KnownNewMoonUnix as a time.Time
var KnownNewMoon = time.Unix(KnownNewMoonUnix, 0).UTC()

// Status holds the computed phase values
type Status struct {
	Fraction     float64 // [0,1): 0=new, 0.5=full
	Elongation   float64 // Sun→Moon angle in degrees [0,360)
	AgeDays      float64 // Fraction × SynodicMonth, display only
	Illumination float64 // percent [0,100]
	Name         Name
}

// Model selects the phase algorithm
type Model int

const (
	ModelMeeus Model = iota
	ModelSimple
)

func (m Model) String() string {
	switch m {
	case ModelSimple:
		return "simple"
	default:
		return "meeus"
	}
}

// ParseModel maps a config or flag value to a Model
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "meeus":
		return ModelMeeus, nil
	case "simple", "synodic":
		return ModelSimple, nil
	}
	return ModelMeeus, fmt.Errorf("unknown phase model %q (want meeus or simple)", s)
}

// Compute returns the phase for t using the model
func (m Model) Compute(t time.Time) Status {
	if m == ModelSimple {
		return Simple(t)
	}
	return Meeus(t)
}

// Simple counts mean synodic months since KnownNewMoon
func Simple(t time.Time) Status {
	elapsed := float64(t.Unix()-KnownNewMoonUnix) + float64(t.Nanosecond())*1e-9
	days := math.Mod(elapsed/86400.0, SynodicMonth)
	if days < 0 {
		days += SynodicMonth
	}
	return FromFraction(days / SynodicMonth)
}

// Meeus computes the elongation of the Moon from the Sun and derives the
// phase from it
func Meeus(t time.Time) Status {
	d := julian.TimeToJD(t.UTC()) - j2000

	// Sun: mean longitude and mean anomaly
	l0 := normalizeDegrees(280.460 + 0.9856474*d)
	g := normalizeDegrees(357.528 + 0.9856003*d)
	lambdaSun := normalizeDegrees(l0 + 1.915*sinDeg(g) + 0.020*sinDeg(2*g))

	// Moon: mean longitude, mean anomaly, mean elongation, argument of latitude
	l := normalizeDegrees(218.316 + 13.176396*d)
	mm := normalizeDegrees(134.963 + 13.064993*d)
	dm := normalizeDegrees(297.850 + 12.190749*d)
	f := normalizeDegrees(93.272 + 13.229350*d)

	lambdaMoon := normalizeDegrees(l +
		6.289*sinDeg(mm) +
		1.274*sinDeg(2*dm-mm) +
		0.658*sinDeg(2*dm) +
		0.214*sinDeg(2*mm) -
		0.186*sinDeg(g) -
		0.059*sinDeg(2*dm-2*mm) -
		0.057*sinDeg(2*dm-mm-g) +
		0.053*sinDeg(2*dm+mm) +
		0.046*sinDeg(2*dm-g) +
		0.041*sinDeg(mm-g) -
		0.035*sinDeg(dm) -
		0.031*sinDeg(mm+g) -
		0.015*sinDeg(2*f-2*dm) +
		0.011*sinDeg(2*dm-4*mm))

	elongation := normalizeDegrees(lambdaMoon - lambdaSun)
	return fromElongation(elongation)
}

// FromFraction derives a Status from a bare phase fraction. Values outside
// [0,1) wrap; non-finite values are treated as new moon.
func FromFraction(fraction float64) Status {
	return fromElongation(wrapFraction(fraction) * 360)
}

func fromElongation(elongation float64) Status {
	if math.IsNaN(elongation) || math.IsInf(elongation, 0) {
		elongation = 0
	}
	fraction := wrapFraction(elongation / 360)
	illumination := 0.5 * (1 - math.Cos(degToRad(elongation))) * 100
	return Status{
		Fraction:     fraction,
		Elongation:   elongation,
		AgeDays:      fraction * SynodicMonth,
		Illumination: clamp(illumination, 0, 100),
		Name:         NameFor(fraction),
	}
}

func wrapFraction(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(f, 1)
	if f < 0 {
		f++
	}
	if f >= 1 {
		f = 0
	}
	return f
}

// normalizeDegrees wraps an angle to [0, 360)
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func sinDeg(deg float64) float64   { return math.Sin(degToRad(deg)) }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
