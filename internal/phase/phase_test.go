package phase

import (
	"math"
	"testing"
	"time"
)

func TestMeeusReferenceDates(t *testing.T) {
	tests := []struct {
		name              string
		time              time.Time
		illuminationRange [2]float64 // min, max percent
	}{
		{
			// ~37.1% for Washington DC, Dec 12 2025 11:46:50 pm EST
			name:              "Waxing toward last quarter Dec 2025",
			time:              time.Date(2025, 12, 13, 4, 46, 50, 0, time.UTC),
			illuminationRange: [2]float64{37.1 - 6, 37.1 + 6},
		},
		{
			// Full moon Dec 4 2025 6:14 pm EST
			name:              "Full Moon Dec 2025",
			time:              time.Date(2025, 12, 4, 23, 14, 0, 0, time.UTC),
			illuminationRange: [2]float64{95, 100},
		},
		{
			// New moon Jan 21 2023 20:53 UTC
			name:              "New Moon Jan 2023",
			time:              time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC),
			illuminationRange: [2]float64{0, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Meeus(tt.time)
			if result.Illumination < tt.illuminationRange[0] || result.Illumination > tt.illuminationRange[1] {
				t.Errorf("Illumination = %.2f%%, expected in range [%.1f, %.1f]",
					result.Illumination, tt.illuminationRange[0], tt.illuminationRange[1])
			}
		})
	}
}

func TestMeeusPhaseNames(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected Name
	}{
		{"new", time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC), New},
		{"first quarter", time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC), FirstQuarter},
		{"full", time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC), Full},
		{"last quarter", time.Date(2023, 2, 13, 16, 1, 0, 0, time.UTC), LastQuarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Meeus(tt.time).Name; got != tt.expected {
				t.Errorf("Name = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSimpleReferenceNewMoon(t *testing.T) {
	result := Simple(KnownNewMoon)
	if result.Fraction > 1e-9 && result.Fraction < 1-1e-9 {
		t.Errorf("Fraction at reference = %.9f, expected ~0", result.Fraction)
	}
	if result.Illumination > 1e-6 {
		t.Errorf("Illumination at reference = %.6f, expected ~0", result.Illumination)
	}
	if result.Name != New {
		t.Errorf("Name = %v, expected %v", result.Name, New)
	}

	half := KnownNewMoon.Add(time.Duration(SynodicMonth / 2 * 86400 * float64(time.Second)))
	result = Simple(half)
	if math.Abs(result.Fraction-0.5) > 1e-6 {
		t.Errorf("Fraction at half month = %.9f, expected 0.5", result.Fraction)
	}
	if result.Illumination < 99.999 {
		t.Errorf("Illumination at half month = %.6f, expected ~100", result.Illumination)
	}
	if result.Name != Full {
		t.Errorf("Name = %v, expected %v", result.Name, Full)
	}
}

func TestSimpleBeforeReference(t *testing.T) {
	result := Simple(KnownNewMoon.Add(-24 * time.Hour))
	if result.Fraction < 0.9 || result.Fraction >= 1 {
		t.Errorf("Fraction one day before reference = %.4f, expected just below 1", result.Fraction)
	}
	if result.Name != New {
		t.Errorf("Name = %v, expected %v", result.Name, New)
	}
}

func TestIlluminationShape(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 500; i++ {
		f := float64(i) / 1000
		ill := FromFraction(f).Illumination
		if ill < 0 || ill > 100 {
			t.Fatalf("Illumination(%.3f) = %.4f out of [0,100]", f, ill)
		}
		if ill < prev {
			t.Fatalf("Illumination decreased on waxing half at %.3f: %.6f < %.6f", f, ill, prev)
		}
		prev = ill
	}
	for i := 500; i < 1000; i++ {
		f := float64(i) / 1000
		ill := FromFraction(f).Illumination
		if ill > prev {
			t.Fatalf("Illumination increased on waning half at %.3f: %.6f > %.6f", f, ill, prev)
		}
		prev = ill
	}

	if ill := FromFraction(0).Illumination; ill > 1e-9 {
		t.Errorf("Illumination(0) = %f, expected 0", ill)
	}
	if ill := FromFraction(0.5).Illumination; math.Abs(ill-100) > 1e-9 {
		t.Errorf("Illumination(0.5) = %f, expected 100", ill)
	}
}

func TestNameFor(t *testing.T) {
	tests := []struct {
		fraction float64
		expected Name
	}{
		{0.0, New},
		{0.0624, New},
		{0.0625, WaxingCrescent}, // 0.5 rounds away from zero
		{0.125, WaxingCrescent},
		{0.25, FirstQuarter},
		{0.375, WaxingGibbous},
		{0.5, Full},
		{0.625, WaningGibbous},
		{0.75, LastQuarter},
		{0.875, WaningCrescent},
		{0.9375, New}, // 7.5 rounds to 8, wraps
		{0.99, New},
		{1.25, FirstQuarter},
		{-0.25, LastQuarter},
	}

	for _, tt := range tests {
		if got := NameFor(tt.fraction); got != tt.expected {
			t.Errorf("NameFor(%v) = %v, expected %v", tt.fraction, got, tt.expected)
		}
	}
}

func TestFromFractionDegenerate(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := FromFraction(f)
		if s.Fraction != 0 || s.Illumination != 0 || s.Name != New {
			t.Errorf("FromFraction(%v) = %+v, expected new moon", f, s)
		}
	}
}

func TestStatusRanges(t *testing.T) {
	for _, model := range []Model{ModelMeeus, ModelSimple} {
		for year := 1950; year <= 2100; year += 10 {
			for month := 1; month <= 12; month++ {
				ts := time.Date(year, time.Month(month), 15, 12, 0, 0, 0, time.UTC)
				s := model.Compute(ts)
				if s.Fraction < 0 || s.Fraction >= 1 {
					t.Errorf("%v: Fraction %.4f out of [0,1) for %v", model, s.Fraction, ts)
				}
				if s.AgeDays < 0 || s.AgeDays >= SynodicMonth {
					t.Errorf("%v: AgeDays %.4f out of range for %v", model, s.AgeDays, ts)
				}
				if s.Elongation < 0 || s.Elongation >= 360 {
					t.Errorf("%v: Elongation %.4f out of range for %v", model, s.Elongation, ts)
				}
			}
		}
	}
}

func TestModelsAgree(t *testing.T) {
	// The mean model drifts from the true one by at most about 14 hours
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 60; day++ {
		ts := start.Add(time.Duration(day) * 24 * time.Hour)
		m := Meeus(ts).Fraction
		s := Simple(ts).Fraction
		diff := math.Abs(m - s)
		if diff > 0.5 {
			diff = 1 - diff
		}
		if diff > 0.05 {
			t.Errorf("%v: meeus %.4f vs simple %.4f", ts.Format("2006-01-02"), m, s)
		}
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		in      string
		want    Model
		wantErr bool
	}{
		{"", ModelMeeus, false},
		{"meeus", ModelMeeus, false},
		{"SIMPLE", ModelSimple, false},
		{"ephemeris", ModelMeeus, true},
	}
	for _, tt := range tests {
		got, err := ParseModel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseModel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUpcoming(t *testing.T) {
	// New moon Jan 21 2023 20:53 UTC, full moon Feb 5 2023 18:29 UTC
	ref := time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC)
	ev := Upcoming(ref)

	wantNew := time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC)
	if d := ev.NextNew.Sub(wantNew); d < -time.Hour || d > time.Hour {
		t.Errorf("NextNew = %v, expected near %v", ev.NextNew, wantNew)
	}
	wantFull := time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC)
	if d := ev.NextFull.Sub(wantFull); d < -time.Hour || d > time.Hour {
		t.Errorf("NextFull = %v, expected near %v", ev.NextFull, wantFull)
	}

	// Just after a new moon the next one is a lunation away
	ev = Upcoming(wantNew.Add(time.Hour))
	if gap := ev.NextNew.Sub(wantNew).Hours() / 24; gap < 29 || gap > 30 {
		t.Errorf("next new moon %.2f days after previous, expected ~29.5", gap)
	}
}

func BenchmarkMeeus(b *testing.B) {
	ts := time.Date(2023, 1, 28, 15, 19, 0, 0, time.UTC)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Meeus(ts)
	}
}
