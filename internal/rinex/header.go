package rinex

import (
	"strconv"
	"strings"
)

// ObservableType is a short code identifying one measurement channel,
// e.g. "C1" (RINEX 2) or "C1C" (RINEX 3). Declaration order in the header
// fixes the observable axis order of the assembled arrays.
type ObservableType string

// FileHeader holds the static header block of one observation file.
// It is immutable after parseHeader returns it.
//
// RINEX 2 declares a single observable list shared by every constellation;
// RINEX 3 declares one list per constellation. TypesFor hides the
// difference.
type FileHeader struct {
	Version   string // verbatim version token, e.g. "2.11"
	Major     int
	FileType  byte // 'O' for observation data
	SatSystem byte // system letter from RINEX VERSION / TYPE, 'M' = mixed

	// GlobalTypes is the RINEX 2 "# / TYPES OF OBSERV" list. Empty for
	// RINEX 3 files.
	GlobalTypes []ObservableType
	// SystemTypes are the RINEX 3 "SYS / # / OBS TYPES" lists keyed by
	// system letter. Empty for RINEX 2 files.
	SystemTypes map[byte][]ObservableType

	// ApproxPos is the APPROX POSITION XYZ coordinates, nil when absent.
	ApproxPos *[3]float64
	// Interval is the nominal observation interval in seconds, 0 when the
	// INTERVAL line is absent (HasInterval distinguishes).
	Interval    float64
	HasInterval bool
	LeapSeconds int
	HasLeap     bool

	// Metadata keeps the header lines this parser does not interpret
	// (marker name, antenna, comments, ...) verbatim.
	Metadata []string
}

// TypesFor returns the declared observable order for one system letter.
func (h *FileHeader) TypesFor(sys byte) []ObservableType {
	if h.Major >= 3 {
		return h.SystemTypes[sys]
	}
	return h.GlobalTypes
}

// Header labels occupy columns 61-80 of every header line.
func headerLabel(line string) string {
	return strings.TrimSpace(pad(line, 80)[60:80])
}

// parseHeader consumes lines up to and including END OF HEADER.
func parseHeader(cur *lineCursor) (FileHeader, error) {
	var hdr FileHeader
	sawVersion := false
	sawEnd := false
	lastSys := byte(0) // continuation target for SYS / # / OBS TYPES

	for {
		line, ok := cur.next()
		if !ok {
			if err := cur.readErr(); err != nil {
				return FileHeader{}, err
			}
			break
		}
		wide := pad(line, 80)
		label := headerLabel(line)

		switch label {
		case "RINEX VERSION / TYPE":
			ver := strings.TrimSpace(wide[:9])
			f, err := strconv.ParseFloat(ver, 64)
			if err != nil || f <= 0 {
				return FileHeader{}, formatErrf(cur.line, "unparseable version token %q", ver)
			}
			hdr.Version = ver
			hdr.Major = int(f)
			hdr.FileType = wide[20]
			hdr.SatSystem = wide[40]
			if hdr.SatSystem == ' ' {
				// RINEX 2 leaves the system blank for GPS-only files.
				hdr.SatSystem = 'G'
			}
			sawVersion = true

		case "# / TYPES OF OBSERV":
			fields := strings.Fields(wide[:60])
			start := 0
			if len(hdr.GlobalTypes) == 0 {
				// First line carries the count; continuation lines do not.
				if len(fields) == 0 {
					return FileHeader{}, formatErrf(cur.line, "empty # / TYPES OF OBSERV")
				}
				if _, err := strconv.Atoi(fields[0]); err != nil {
					return FileHeader{}, formatErrf(cur.line, "bad observable count %q", fields[0])
				}
				start = 1
			}
			for _, f := range fields[start:] {
				hdr.GlobalTypes = append(hdr.GlobalTypes, ObservableType(f))
			}

		case "SYS / # / OBS TYPES":
			if hdr.SystemTypes == nil {
				hdr.SystemTypes = map[byte][]ObservableType{}
			}
			sys := wide[0]
			fields := strings.Fields(wide[6:58])
			if sys != ' ' {
				if _, err := strconv.Atoi(strings.TrimSpace(wide[3:6])); err != nil {
					return FileHeader{}, formatErrf(cur.line, "bad observable count for system %c", sys)
				}
				lastSys = sys
			} else if lastSys == 0 {
				return FileHeader{}, formatErrf(cur.line, "SYS / # / OBS TYPES continuation without a first line")
			}
			for _, f := range fields {
				hdr.SystemTypes[lastSys] = append(hdr.SystemTypes[lastSys], ObservableType(f))
			}

		case "APPROX POSITION XYZ":
			fields := strings.Fields(wide[:60])
			if len(fields) == 3 {
				var pos [3]float64
				okAll := true
				for i, f := range fields {
					v, err := strconv.ParseFloat(f, 64)
					if err != nil {
						okAll = false
						break
					}
					pos[i] = v
				}
				if okAll {
					hdr.ApproxPos = &pos
				}
			}

		case "INTERVAL":
			if v, err := strconv.ParseFloat(strings.TrimSpace(wide[:10]), 64); err == nil {
				hdr.Interval = v
				hdr.HasInterval = true
			}

		case "LEAP SECONDS":
			if v, err := strconv.Atoi(strings.TrimSpace(wide[:6])); err == nil {
				hdr.LeapSeconds = v
				hdr.HasLeap = true
			}

		case "END OF HEADER":
			sawEnd = true

		default:
			hdr.Metadata = append(hdr.Metadata, line)
		}

		if sawEnd {
			break
		}
	}

	if !sawEnd {
		return FileHeader{}, formatErrf(cur.line, "no END OF HEADER marker")
	}
	if !sawVersion {
		return FileHeader{}, formatErrf(cur.line, "no RINEX VERSION / TYPE line")
	}
	return hdr, nil
}
