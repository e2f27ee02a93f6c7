package rinex

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func scenarioFile() [][]string {
	return [][]string{
		modernFixtureHeader(),
		{
			modernEpochLine(2022, 1, 1, 0, 0, 0, FlagOK, 3),
			"G02" + cell(20891234.123) + cell(109812345.678) + cell(1234.5) + cell(45.0),
			"G05" + cell(21233456.789) + cell(111609876.543) + cell(-2345.6) + cell(41.0),
			"R11" + cell(19876543.210) + cell(106123456.789) + cell(39.5),
			modernEpochLine(2022, 1, 1, 0, 0, 30, FlagOK, 3),
			"G02" + cell(20891240.000) + blankCell + cell(1230.0) + cell(44.5),
			"G05" + cell(21233400.000) + cell(111609900.000) + cell(-2340.0) + cell(40.5),
			"R11" + cell(19876550.000) + cell(106123500.000) + cell(40.0),
		},
	}
}

func TestParse_DeterministicSlotAssignment(t *testing.T) {
	a, err := Parse(context.Background(), fileOf(scenarioFile()...), Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	b, err := Parse(context.Background(), fileOf(scenarioFile()...), Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(a.Slots, b.Slots) {
		t.Fatalf("slot maps differ between identical parses:\n%v\n%v", a.Slots, b.Slots)
	}
	if !reflect.DeepEqual(a.Satellites, b.Satellites) {
		t.Fatalf("satellite lists differ between identical parses")
	}
}

func TestParse_ObservableFiltering(t *testing.T) {
	full, err := Parse(context.Background(), fileOf(scenarioFile()...), Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	sub, err := Parse(context.Background(), fileOf(scenarioFile()...), Options{
		Select: []ObservableType{"C1C", "S1C"},
	})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	g := sub.Stores['G']
	if _, _, nt := g.Shape(); nt != 2 {
		t.Fatalf("filtered G observables=%d want 2", nt)
	}
	if g.Types[0] != "C1C" || g.Types[1] != "S1C" {
		t.Fatalf("filtered order=%v want declaration order [C1C S1C]", g.Types)
	}

	// Filtered values must match the unfiltered parse restricted to those
	// columns, NaN included.
	fullG := full.Stores['G']
	cols := []int{0, 3} // C1C, S1C in the declared order
	ne, ns, _ := g.Shape()
	for e := 0; e < ne; e++ {
		for s := 0; s < ns; s++ {
			for j, fc := range cols {
				want := fullG.At(e, s, fc)
				got := g.At(e, s, j)
				if math.IsNaN(want) != math.IsNaN(got) || (!math.IsNaN(want) && want != got) {
					t.Fatalf("[%d,%d,%d]=%v want %v", e, s, j, got, want)
				}
			}
		}
	}

	// Per-system override: R keeps a single observable, G follows Select.
	per, err := Parse(context.Background(), fileOf(scenarioFile()...), Options{
		Select:         []ObservableType{"C1C", "S1C"},
		SelectBySystem: map[byte][]ObservableType{'R': {"S1C"}},
	})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, _, nt := per.Stores['R'].Shape(); nt != 1 {
		t.Fatalf("R observables=%d want 1", nt)
	}
	if _, _, nt := per.Stores['G'].Shape(); nt != 2 {
		t.Fatalf("G observables=%d want 2", nt)
	}
	if v, ok := per.Stores['R'].Value(0, 11, "S1C"); !ok || v != 39.5 {
		t.Fatalf("R11 S1C=%v ok=%v want 39.5", v, ok)
	}
}

func TestParse_DecreasingTimestampsRejected(t *testing.T) {
	src := fileOf(
		modernFixtureHeader(),
		[]string{
			modernEpochLine(2022, 1, 1, 0, 1, 0, FlagOK, 1),
			"G02" + cell(20891234.123) + cell(109812345.678) + cell(1234.5) + cell(45.0),
			modernEpochLine(2022, 1, 1, 0, 0, 30, FlagOK, 1),
			"G02" + cell(20891240.000) + cell(109812400.000) + cell(1230.0) + cell(44.5),
		},
	)
	_, err := Parse(context.Background(), src, Options{})
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError for decreasing timestamps, got %v", err)
	}
}

func TestParse_EqualTimestampsAllowed(t *testing.T) {
	src := fileOf(
		modernFixtureHeader(),
		[]string{
			modernEpochLine(2022, 1, 1, 0, 0, 0, FlagOK, 1),
			"G02" + cell(1) + cell(2) + cell(3) + cell(4),
			modernEpochLine(2022, 1, 1, 0, 0, 0, FlagOK, 1),
			"G02" + cell(5) + cell(6) + cell(7) + cell(8),
		},
	)
	res, err := Parse(context.Background(), src, Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(res.Times) != 2 {
		t.Fatalf("epochs=%d want 2", len(res.Times))
	}
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Parse(ctx, fileOf(scenarioFile()...), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no result after cancellation")
	}
}

func TestParse_UnsupportedMajorVersion(t *testing.T) {
	src := fileOf([]string{
		versionLine("4.00", "M: Mixed"),
		hline("", "END OF HEADER"),
	})
	_, err := Parse(context.Background(), src, Options{})
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
}

func TestParse_EmptyBody(t *testing.T) {
	res, err := Parse(context.Background(), fileOf(modernFixtureHeader()), Options{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(res.Times) != 0 || len(res.Stores) != 0 {
		t.Fatalf("expected empty result, got %d epochs, %d stores", len(res.Times), len(res.Stores))
	}
}
