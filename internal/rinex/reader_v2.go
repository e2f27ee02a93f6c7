package rinex

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Legacy (RINEX 2.x) epoch block layout:
//
//	1X,I2, 4(1X,I2), F11.7, 2X,I1, I3   yy mm dd hh mm ss.sssssss, flag, count
//	12(A1,I2)                           satellite ids from column 33, twelve
//	                                    per line, continued for >12 satellites
//	5(F14.3,A1,A1) per line             then per satellite ceil(ntypes/5)
//	                                    observation lines
type legacyReader struct{}

func (r *legacyReader) readEpoch(cur *lineCursor, hdr *FileHeader, stats *ParseStats) (EpochRecord, bool, error) {
	line, ok := nextNonBlank(cur)
	if !ok {
		return EpochRecord{}, false, cur.readErr()
	}
	headerLine := cur.line
	wide := pad(line, 80)

	flag, err := strconv.Atoi(string(wide[28]))
	if err != nil {
		return EpochRecord{}, false, formatErrf(headerLine, "bad epoch flag %q", wide[28:29])
	}
	count, err := atoiTrim(wide[29:32])
	if err != nil || count < 0 {
		return EpochRecord{}, false, formatErrf(headerLine, "bad satellite count %q", strings.TrimSpace(wide[29:32]))
	}

	if !flagCarriesData(flag) {
		// Event block: count is the number of following lines, not satellites.
		if err := skipLines(cur, count, headerLine); err != nil {
			return EpochRecord{}, false, err
		}
		stats.Events++
		return EpochRecord{Flag: flag}, true, nil
	}

	ts, err := parseLegacyTime(wide)
	if err != nil {
		return EpochRecord{}, false, formatErrf(headerLine, "bad epoch timestamp: %v", err)
	}

	// Satellite id list, 12 per line.
	ids := make([]string, 0, count)
	satsLine := wide
	for s := 0; s < count; s++ {
		if s > 0 && s%12 == 0 {
			l, lok := cur.next()
			if !lok {
				return EpochRecord{}, false, &TruncatedRecordError{Line: headerLine, Declared: count, Got: s}
			}
			satsLine = pad(l, 80)
		}
		off := 32 + (s%12)*3
		ids = append(ids, satsLine[off:off+3])
	}

	ntypes := len(hdr.GlobalTypes)
	rows := (ntypes + 4) / 5
	sats := make([]SatObs, 0, count)
	for s := 0; s < count; s++ {
		var block strings.Builder
		for i := 0; i < rows; i++ {
			l, lok := cur.next()
			if !lok {
				return EpochRecord{}, false, &TruncatedRecordError{Line: headerLine, Declared: count, Got: s}
			}
			block.WriteString(pad(l, 80))
		}

		sys, num, idOK := parseSatID(ids[s], hdr)
		if !idOK {
			stats.InvalidSatellites++
			continue
		}
		data := block.String()
		cells := make([]Cell, ntypes)
		for j := range cells {
			cells[j] = parseCell(data[j*cellWidth:(j+1)*cellWidth], stats)
		}
		stats.Satellites++
		sats = append(sats, SatObs{System: sys, Number: num, Cells: cells})
	}

	stats.Epochs++
	return EpochRecord{Time: ts, Flag: flag, Sats: sats}, true, nil
}

// parseSatID splits a 3-character satellite id like "G02" or " 12". A blank
// system letter is the file's single system (GPS for mixed or unset).
func parseSatID(id string, hdr *FileHeader) (sys byte, num int, ok bool) {
	sys = id[0]
	if sys == ' ' {
		sys = hdr.SatSystem
		if sys == 'M' || sys < 'A' || sys > 'Z' {
			sys = 'G'
		}
	}
	if sys < 'A' || sys > 'Z' {
		return 0, 0, false
	}
	num, err := atoiTrim(id[1:])
	if err != nil || num <= 0 {
		return 0, 0, false
	}
	return sys, num, true
}

func parseLegacyTime(wide string) (time.Time, error) {
	yy, err := atoiTrim(wide[1:3])
	if err != nil {
		return time.Time{}, err
	}
	// Two-digit years: 80-99 are 19xx, 00-79 are 20xx.
	year := 2000 + yy
	if yy >= 80 {
		year = 1900 + yy
	}
	return parseEpochTime(year, wide[4:6], wide[7:9], wide[10:12], wide[13:15], wide[15:26])
}

func parseEpochTime(year int, moS, ddS, hhS, miS, secS string) (time.Time, error) {
	mo, err := atoiTrim(moS)
	if err != nil {
		return time.Time{}, err
	}
	dd, err := atoiTrim(ddS)
	if err != nil {
		return time.Time{}, err
	}
	hh, err := atoiTrim(hhS)
	if err != nil {
		return time.Time{}, err
	}
	mi, err := atoiTrim(miS)
	if err != nil {
		return time.Time{}, err
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(secS), 64)
	if err != nil {
		return time.Time{}, err
	}
	whole := int(sec)
	nanos := int(math.Round((sec - float64(whole)) * 1e9))
	return time.Date(year, time.Month(mo), dd, hh, mi, whole, nanos, time.UTC), nil
}

func atoiTrim(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func nextNonBlank(cur *lineCursor) (string, bool) {
	for {
		line, ok := cur.next()
		if !ok {
			return "", false
		}
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
}

func skipLines(cur *lineCursor, n, headerLine int) error {
	for i := 0; i < n; i++ {
		if _, ok := cur.next(); !ok {
			return &TruncatedRecordError{Line: headerLine, Declared: n, Got: i}
		}
	}
	return nil
}
