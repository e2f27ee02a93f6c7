package rinex

import (
	"strings"
)

// Modern (RINEX 3.x) epoch block layout:
//
//	> yyyy mm dd hh mm ss.sssssss  f nn   epoch header
//	A1,I2.2, n(F14.3,A1,A1)               one line per satellite; the cell
//	                                      count is the satellite's system's
//	                                      declared observable count
type modernReader struct{}

func (r *modernReader) readEpoch(cur *lineCursor, hdr *FileHeader, stats *ParseStats) (EpochRecord, bool, error) {
	line, ok := nextNonBlank(cur)
	if !ok {
		return EpochRecord{}, false, cur.readErr()
	}
	headerLine := cur.line
	if line[0] != '>' {
		return EpochRecord{}, false, formatErrf(headerLine, "expected '>' epoch header, got %q", firstField(line))
	}

	fields := strings.Fields(line[1:])
	if len(fields) < 8 {
		return EpochRecord{}, false, formatErrf(headerLine, "short epoch header (%d fields)", len(fields))
	}
	flag, err := atoiTrim(fields[6])
	if err != nil {
		return EpochRecord{}, false, formatErrf(headerLine, "bad epoch flag %q", fields[6])
	}
	count, err := atoiTrim(fields[7])
	if err != nil || count < 0 {
		return EpochRecord{}, false, formatErrf(headerLine, "bad satellite count %q", fields[7])
	}

	if !flagCarriesData(flag) {
		if err := skipLines(cur, count, headerLine); err != nil {
			return EpochRecord{}, false, err
		}
		stats.Events++
		return EpochRecord{Flag: flag}, true, nil
	}

	year, err := atoiTrim(fields[0])
	if err != nil {
		return EpochRecord{}, false, formatErrf(headerLine, "bad epoch year %q", fields[0])
	}
	ts, err := parseEpochTime(year, fields[1], fields[2], fields[3], fields[4], fields[5])
	if err != nil {
		return EpochRecord{}, false, formatErrf(headerLine, "bad epoch timestamp: %v", err)
	}

	sats := make([]SatObs, 0, count)
	for s := 0; s < count; s++ {
		l, lok := cur.next()
		if !lok {
			return EpochRecord{}, false, &TruncatedRecordError{Line: headerLine, Declared: count, Got: s}
		}
		l = pad(l, 3)

		sys := l[0]
		num, numErr := atoiTrim(l[1:3])
		types := hdr.TypesFor(sys)
		if numErr != nil || num <= 0 || sys < 'A' || sys > 'Z' || len(types) == 0 {
			// Undeclared systems have an unknown cell count; the whole line
			// is that satellite's, so dropping it loses nothing else.
			stats.InvalidSatellites++
			continue
		}

		wide := pad(l, 3+len(types)*cellWidth)
		cells := make([]Cell, len(types))
		for j := range cells {
			cells[j] = parseCell(wide[3+j*cellWidth:3+(j+1)*cellWidth], stats)
		}
		stats.Satellites++
		sats = append(sats, SatObs{System: sys, Number: num, Cells: cells})
	}

	stats.Epochs++
	return EpochRecord{Time: ts, Flag: flag, Sats: sats}, true, nil
}

func firstField(line string) string {
	f := strings.Fields(line)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
