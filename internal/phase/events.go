package phase

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonphase"
)

// Events holds the next principal phase instants after a reference time
type Events struct {
	NextNew  time.Time
	NextFull time.Time
}

// Upcoming finds the next new and full moon strictly after t. Instants come
// from the Meeus ch. 49 series and are in dynamical time, which differs from
// UTC by about a minute.
func Upcoming(t time.Time) Events {
	return Events{
		NextNew:  nextAfter(t, moonphase.New),
		NextFull: nextAfter(t, moonphase.Full),
	}
}

func nextAfter(t time.Time, instant func(year float64) float64) time.Time {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	year := decimalYear(t)
	step := SynodicMonth / 365.25
	// moonphase snaps to the lunation nearest the given year, so walk from
	// one lunation back until the result passes t
	for k := -1; k < 4; k++ {
		if e := instant(year + float64(k)*step); e > jd {
			return julian.JDToTime(e)
		}
	}
	return julian.JDToTime(instant(year + 4*step))
}

func decimalYear(t time.Time) float64 {
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + float64(t.Sub(start))/float64(end.Sub(start))
}
