package rinex

import "fmt"

// FormatError reports an unrecoverable structural problem: an unparseable
// version token, a missing end-of-header marker, a malformed epoch header,
// or timestamps running backwards. It aborts the whole-file parse.
type FormatError struct {
	Line int // 1-based line number in the source, 0 when unknown
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rinex: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("rinex: %s", e.Msg)
}

func formatErrf(line int, format string, args ...interface{}) error {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// TruncatedRecordError reports an epoch block whose declared satellite or
// line count exceeds the remaining input. Partial recovery would silently
// distort downstream array shapes, so this is fatal.
type TruncatedRecordError struct {
	Epoch    int // zero-based index of the truncated epoch
	Line     int // line number of the epoch header
	Declared int // satellites (or event lines) declared on the epoch header
	Got      int // complete entries actually read
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("rinex: line %d: epoch %d truncated: declared %d, got %d",
		e.Line, e.Epoch, e.Declared, e.Got)
}
