package rinex

import (
	"math"
	"time"
)

// Epoch flags from the observation record header. 0, 1 and 6 carry
// observation data; 2-5 mark event blocks whose "satellite count" field is
// the number of following lines to skip.
const (
	FlagOK           = 0
	FlagPowerFailure = 1
	FlagCycleSlip    = 6
)

func flagCarriesData(flag int) bool {
	return flag == FlagOK || flag == FlagPowerFailure || flag == FlagCycleSlip
}

// Cell is one observable reading. A blank source field yields NaN, which
// keeps "not measured" distinct from a legitimate 0.0 reading. LLI and SSI
// are the two single-character quality flags, 0 when blank.
type Cell struct {
	Value float64
	LLI   byte
	SSI   byte
}

// Missing reports whether the source field was blank.
func (c Cell) Missing() bool {
	return math.IsNaN(c.Value)
}

func missingCell() Cell {
	return Cell{Value: math.NaN()}
}

// SatObs is one satellite's readings within one epoch. Cells is aligned to
// the declared observable order of the satellite's system, so
// len(Cells) == len(header.TypesFor(System)) always holds.
type SatObs struct {
	System byte
	Number int // 1-based, system-scoped
	Cells  []Cell
}

// EpochRecord is the transient result of reading one epoch block.
// Event records (flags 2-5) legitimately carry zero satellites.
type EpochRecord struct {
	Time time.Time
	Flag int
	Sats []SatObs
}

// ParseStats aggregates the recoverable conditions of one parse session.
// Recoverable means the parse continued; fatal problems surface as errors
// instead.
type ParseStats struct {
	Epochs            uint64 // data-carrying epochs read
	Events            uint64 // event blocks (flags 2-5) skipped
	Satellites        uint64 // satellite observations kept
	MissingFields     uint64 // blank value fields stored as NaN
	InvalidSatellites uint64 // observations dropped for bad satellite numbers
}
