package rinex

import (
	"context"
	"errors"
	"io"
	"time"
)

// Options is the configuration surface of a parse session. The zero value
// retains every declared observable.
type Options struct {
	// Select restricts every system to these observable codes. nil keeps
	// all declared types; an empty non-nil slice keeps none.
	Select []ObservableType
	// SelectBySystem overrides Select for individual systems.
	SelectBySystem map[byte][]ObservableType
}

func (o Options) typesFor(sys byte) []ObservableType {
	if w, ok := o.SelectBySystem[sys]; ok {
		return w
	}
	return o.Select
}

// Result bundles everything one parse session produces: the per-system
// stores with their satellite lists, slot maps and observable orders, the
// file header, and the epoch timestamp sequence shared by every store's
// epoch axis.
type Result struct {
	Header     FileHeader
	Stores     map[byte]*ObservationStore
	Satellites map[byte][]int
	Slots      map[byte]map[int]int
	Types      map[byte][]ObservableType
	Times      []time.Time
	Stats      ParseStats
}

// Parse runs one complete session over a line source: header, scan of every
// epoch block, then dense assembly. Sessions share no state; independent
// files may be parsed concurrently.
//
// Fatal errors (*FormatError, *TruncatedRecordError, read errors,
// cancellation) return a nil Result: a partially scattered store is never
// surfaced. Blank fields and bad satellite numbers are recovered locally
// and aggregated in Result.Stats.
func Parse(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cur := newLineCursor(r)
	hdr, err := parseHeader(cur)
	if err != nil {
		return nil, err
	}
	reader, err := newEpochReader(&hdr)
	if err != nil {
		return nil, err
	}

	reg := newSatelliteRegistry()
	var (
		records []EpochRecord
		stats   ParseStats
		last    time.Time
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok, err := reader.readEpoch(cur, &hdr, &stats)
		if err != nil {
			var tre *TruncatedRecordError
			if errors.As(err, &tre) {
				tre.Epoch = len(records)
			}
			return nil, err
		}
		if !ok {
			if err := cur.readErr(); err != nil {
				return nil, err
			}
			break
		}
		if !flagCarriesData(rec.Flag) {
			continue
		}
		if len(records) > 0 && rec.Time.Before(last) {
			return nil, formatErrf(cur.line, "epoch timestamps decrease: %s after %s",
				rec.Time.Format(time.RFC3339Nano), last.Format(time.RFC3339Nano))
		}
		last = rec.Time
		reg.observe(rec)
		records = append(records, rec)
	}

	reg.freeze()
	stores := assemble(&hdr, records, reg, opts)

	res := &Result{
		Header:     hdr,
		Stores:     stores,
		Satellites: make(map[byte][]int, len(stores)),
		Slots:      make(map[byte]map[int]int, len(stores)),
		Types:      make(map[byte][]ObservableType, len(stores)),
		Times:      epochTimes(records),
		Stats:      stats,
	}
	for sys, st := range stores {
		res.Satellites[sys] = st.Sats
		res.Slots[sys] = st.Slots
		res.Types[sys] = st.Types
	}
	return res, nil
}
