package rinex

import (
	"bufio"
	"io"
	"strings"
)

// lineCursor is a sequential reader over the text lines of one file.
// It tracks the 1-based number of the last line returned so errors can
// carry a file offset.
type lineCursor struct {
	s    *bufio.Scanner
	line int
	err  error
}

func newLineCursor(r io.Reader) *lineCursor {
	s := bufio.NewScanner(r)
	// Header comment lines and wide epoch blocks stay well under this,
	// but be generous for malformed input.
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineCursor{s: s}
}

// next returns the next line. ok=false at end of input or on a read error;
// check readErr to distinguish the two.
func (c *lineCursor) next() (string, bool) {
	if c.err != nil {
		return "", false
	}
	if !c.s.Scan() {
		c.err = c.s.Err()
		return "", false
	}
	c.line++
	return c.s.Text(), true
}

func (c *lineCursor) readErr() error {
	return c.err
}

// pad right-pads line with spaces to at least width columns. RINEX writers
// routinely trim trailing blanks, so fixed-column slicing must tolerate
// short lines.
func pad(line string, width int) string {
	if len(line) >= width {
		return line
	}
	return line + strings.Repeat(" ", width-len(line))
}
