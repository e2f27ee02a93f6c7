package rinex

// Package rinex reads GNSS observation files in the RINEX 2.x and 3.x
// text layouts and assembles the measurements into dense per-constellation
// arrays.
//
// The pipeline is two-phase:
//   - Scan: read the header, then consume one epoch block at a time into
//     transient EpochRecords while registering every satellite seen.
//   - Assemble: freeze satellite slot assignments, allocate one
//     ObservationStore per constellation, and scatter the values.
//
// Blank observation fields are kept distinct from zero readings: they are
// stored as NaN, never 0.0.
