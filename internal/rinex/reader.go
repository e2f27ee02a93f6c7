package rinex

import (
	"strconv"
	"strings"
)

// epochReader consumes exactly one epoch block per call, advancing the
// cursor past every line it used. ok=false signals a clean end of input.
//
// The two RINEX families lay epoch blocks out so differently (fixed
// 80-column fields plus continuation lines vs. one line per satellite)
// that each gets its own reader; the file's version picks one reader for
// the whole session, versions never mix within a file.
type epochReader interface {
	readEpoch(cur *lineCursor, hdr *FileHeader, stats *ParseStats) (rec EpochRecord, ok bool, err error)
}

func newEpochReader(hdr *FileHeader) (epochReader, error) {
	switch hdr.Major {
	case 2:
		return &legacyReader{}, nil
	case 3:
		return &modernReader{}, nil
	default:
		return nil, formatErrf(0, "unsupported RINEX major version %d (version %q)", hdr.Major, hdr.Version)
	}
}

// Observation value fields are 14 characters (F14.3) followed by the
// loss-of-lock and signal-strength flag characters in both families.
const cellWidth = 16

// parseCell splits one fixed-width field into value + two flag characters.
// A pure-whitespace value is absent, not zero.
func parseCell(field string, stats *ParseStats) Cell {
	field = pad(field, cellWidth)
	c := parseFloatCell(field[:14])
	if c.Missing() {
		stats.MissingFields++
	}
	if b := field[14]; b != ' ' {
		c.LLI = b
	}
	if b := field[15]; b != ' ' {
		c.SSI = b
	}
	return c
}

// parseFloatCell treats blank and unparseable values alike: absent.
func parseFloatCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return missingCell()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return missingCell()
	}
	return Cell{Value: v}
}
