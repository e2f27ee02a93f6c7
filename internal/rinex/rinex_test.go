package rinex

import (
	"errors"
	"fmt"
	"strings"
)

// Fixture builders for both file layouts. Column positions follow the
// published RINEX 2.11 / 3.0x observation formats.

func hline(content, label string) string {
	return fmt.Sprintf("%-60s%s", content, label)
}

func versionLine(version, sysDesc string) string {
	return hline(fmt.Sprintf("%9s%11s%-20s%-20s", version, "", "OBSERVATION DATA", sysDesc), "RINEX VERSION / TYPE")
}

func legacyHeader(types ...string) []string {
	tl := fmt.Sprintf("%6d", len(types))
	for _, t := range types {
		tl += fmt.Sprintf("%6s", t)
	}
	return []string{
		versionLine("2.11", "G (GPS)"),
		hline(tl, "# / TYPES OF OBSERV"),
		hline("", "END OF HEADER"),
	}
}

func modernTypesLine(sys byte, count int, types []string) string {
	content := fmt.Sprintf("%c  %3d", sys, count)
	for _, t := range types {
		content += fmt.Sprintf(" %-3s", t)
	}
	return hline(content, "SYS / # / OBS TYPES")
}

func modernHeader(typesBySys map[byte][]string, sysOrder ...byte) []string {
	lines := []string{versionLine("3.03", "M: Mixed")}
	for _, sys := range sysOrder {
		lines = append(lines, modernTypesLine(sys, len(typesBySys[sys]), typesBySys[sys]))
	}
	lines = append(lines, hline("", "END OF HEADER"))
	return lines
}

// legacyEpochLine builds the epoch header for up to 12 satellites.
func legacyEpochLine(yy, mo, dd, hh, mi int, sec float64, flag int, sats ...string) string {
	line := fmt.Sprintf(" %02d %2d %2d %2d %2d%11.7f  %d%3d", yy, mo, dd, hh, mi, sec, flag, len(sats))
	for _, s := range sats {
		line += s
	}
	return line
}

func modernEpochLine(year, mo, dd, hh, mi int, sec float64, flag, nsat int) string {
	return fmt.Sprintf("> %4d %02d %02d %02d %02d %10.7f  %d %2d", year, mo, dd, hh, mi, sec, flag, nsat)
}

// cellF renders one 16-character observation cell.
func cellF(v float64, lli, ssi byte) string {
	return fmt.Sprintf("%14.3f%c%c", v, lli, ssi)
}

func cell(v float64) string {
	return cellF(v, ' ', ' ')
}

var blankCell = strings.Repeat(" ", 16)

func fmt6(n int) string { return fmt.Sprintf("%6d", n) }

func fmt6s(s string) string { return fmt.Sprintf("%6s", s) }

func asFormatError(err error, target **FormatError) bool {
	return errors.As(err, target)
}

func fileOf(lines ...[]string) *strings.Reader {
	var all []string
	for _, ls := range lines {
		all = append(all, ls...)
	}
	return strings.NewReader(strings.Join(all, "\n") + "\n")
}
