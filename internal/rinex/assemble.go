package rinex

import (
	"math"
	"time"
)

// ObservationStore is one system's dense [epochs × slots × observables]
// array plus the frozen metadata needed to address it. Cells never written
// hold NaN.
//
// Memory is proportional to epochs × distinct satellites × observables even
// when most satellites are visible only briefly. That is the known cost of
// a dense layout over sparse satellite numbering, accepted for O(1) lookup.
type ObservationStore struct {
	System byte
	Types  []ObservableType // observable axis, declaration (or selection) order
	Sats   []int            // slot axis: ascending satellite numbers
	Slots  map[int]int      // satellite number → slot index
	Data   []float64        // flat, epoch-major then slot then observable
}

// Shape returns (epochs, slots, observables).
func (s *ObservationStore) Shape() (int, int, int) {
	nslot := len(s.Sats)
	ntype := len(s.Types)
	if nslot == 0 || ntype == 0 {
		return 0, nslot, ntype
	}
	return len(s.Data) / (nslot * ntype), nslot, ntype
}

// At returns the value at (epoch, slot, observable). NaN means the field
// was blank or the satellite was not observed at that epoch.
func (s *ObservationStore) At(epoch, slot, obs int) float64 {
	return s.Data[(epoch*len(s.Sats)+slot)*len(s.Types)+obs]
}

// Value looks a reading up by satellite number and observable code.
func (s *ObservationStore) Value(epoch, satNum int, typ ObservableType) (float64, bool) {
	slot, ok := s.Slots[satNum]
	if !ok {
		return 0, false
	}
	for j, t := range s.Types {
		if t == typ {
			return s.At(epoch, slot, j), true
		}
	}
	return 0, false
}

// selectedTypes applies the caller's observable selection to one system's
// declared order. Declaration order is preserved; unknown requested codes
// are ignored. colMap maps declared index → selected index, -1 for columns
// that were filtered out and never get allocated.
func selectedTypes(declared []ObservableType, want []ObservableType) (kept []ObservableType, colMap []int) {
	colMap = make([]int, len(declared))
	if want == nil {
		kept = declared
		for j := range colMap {
			colMap[j] = j
		}
		return kept, colMap
	}
	wanted := make(map[ObservableType]struct{}, len(want))
	for _, t := range want {
		wanted[t] = struct{}{}
	}
	for j, t := range declared {
		if _, ok := wanted[t]; ok {
			colMap[j] = len(kept)
			kept = append(kept, t)
		} else {
			colMap[j] = -1
		}
	}
	return kept, colMap
}

// assemble allocates one store per system and scatters the scanned records.
// records must contain data-carrying epochs only, in time order, and the
// registry must be frozen over exactly these records.
func assemble(hdr *FileHeader, records []EpochRecord, reg *SatelliteRegistry, opts Options) map[byte]*ObservationStore {
	nep := len(records)
	stores := make(map[byte]*ObservationStore)

	type sysState struct {
		store  *ObservationStore
		colMap []int
	}
	states := make(map[byte]*sysState)

	for _, sys := range reg.Systems() {
		kept, colMap := selectedTypes(hdr.TypesFor(sys), opts.typesFor(sys))
		sats := reg.Satellites(sys)
		slots := make(map[int]int, len(sats))
		for i, n := range sats {
			slots[n] = i
		}
		data := make([]float64, nep*len(sats)*len(kept))
		for i := range data {
			data[i] = math.NaN()
		}
		st := &ObservationStore{
			System: sys,
			Types:  kept,
			Sats:   sats,
			Slots:  slots,
			Data:   data,
		}
		stores[sys] = st
		states[sys] = &sysState{store: st, colMap: colMap}
	}

	for iep, rec := range records {
		for _, sat := range rec.Sats {
			ss := states[sat.System]
			if ss == nil {
				continue
			}
			slot, ok := reg.SlotOf(sat.System, sat.Number)
			if !ok {
				continue
			}
			base := (iep*len(ss.store.Sats) + slot) * len(ss.store.Types)
			for j, cell := range sat.Cells {
				col := ss.colMap[j]
				if col < 0 {
					continue
				}
				ss.store.Data[base+col] = cell.Value
			}
		}
	}
	return stores
}

// epochTimes extracts the parallel timestamp sequence of the assembled
// epoch axis.
func epochTimes(records []EpochRecord) []time.Time {
	out := make([]time.Time, len(records))
	for i, rec := range records {
		out[i] = rec.Time
	}
	return out
}
