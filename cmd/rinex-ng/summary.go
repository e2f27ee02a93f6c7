package main

import (
	"fmt"
	"math"
	"sort"
	"time"

	"rinex-ng/internal/rinex"
)

type systemSummary struct {
	System     byte
	Satellites int
	Types      int
	Cells      int
	Missing    int
}

type resultSummary struct {
	Version string
	Epochs  int
	Span    time.Duration
	Systems []systemSummary
}

func summarizeResult(res *rinex.Result) resultSummary {
	s := resultSummary{
		Version: res.Header.Version,
		Epochs:  len(res.Times),
	}
	if n := len(res.Times); n > 1 {
		s.Span = res.Times[n-1].Sub(res.Times[0])
	}

	for sys, st := range res.Stores {
		ss := systemSummary{
			System:     sys,
			Satellites: len(st.Sats),
			Types:      len(st.Types),
			Cells:      len(st.Data),
		}
		for _, v := range st.Data {
			if math.IsNaN(v) {
				ss.Missing++
			}
		}
		s.Systems = append(s.Systems, ss)
	}
	sort.Slice(s.Systems, func(i, j int) bool { return s.Systems[i].System < s.Systems[j].System })
	return s
}

func (s resultSummary) lines() []string {
	out := []string{
		fmt.Sprintf("rinex v%s: %d epochs spanning %s, %d systems", s.Version, s.Epochs, s.Span, len(s.Systems)),
	}
	for _, ss := range s.Systems {
		pct := 0.0
		if ss.Cells > 0 {
			pct = 100 * float64(ss.Missing) / float64(ss.Cells)
		}
		out = append(out, fmt.Sprintf("  %c: %d satellites x %d observables, %.1f%% cells missing",
			ss.System, ss.Satellites, ss.Types, pct))
	}
	return out
}
