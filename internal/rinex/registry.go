package rinex

import "sort"

// SatelliteRegistry tracks, per system, the distinct satellite numbers seen
// during the scan phase and, once frozen, the satellite-number → slot-index
// mapping used by the assembled arrays.
//
// Slots are assigned by ascending satellite number over the full set seen
// in the file, so re-parsing the same input always reproduces the same
// mapping regardless of the order satellites first appeared.
type SatelliteRegistry struct {
	seen   map[byte]map[int]struct{}
	frozen bool
	lists  map[byte][]int
	slots  map[byte]map[int]int
}

func newSatelliteRegistry() *SatelliteRegistry {
	return &SatelliteRegistry{seen: map[byte]map[int]struct{}{}}
}

// observe records every satellite of one epoch. Must not be called after
// freeze.
func (r *SatelliteRegistry) observe(rec EpochRecord) {
	for _, s := range rec.Sats {
		m := r.seen[s.System]
		if m == nil {
			m = map[int]struct{}{}
			r.seen[s.System] = m
		}
		m[s.Number] = struct{}{}
	}
}

// freeze assigns slot indices. After freeze the mapping is immutable for
// the session.
func (r *SatelliteRegistry) freeze() {
	if r.frozen {
		return
	}
	r.frozen = true
	r.lists = make(map[byte][]int, len(r.seen))
	r.slots = make(map[byte]map[int]int, len(r.seen))
	for sys, nums := range r.seen {
		list := make([]int, 0, len(nums))
		for n := range nums {
			list = append(list, n)
		}
		sort.Ints(list)
		slots := make(map[int]int, len(list))
		for i, n := range list {
			slots[n] = i
		}
		r.lists[sys] = list
		r.slots[sys] = slots
	}
}

// Systems returns the system letters seen, in letter order.
func (r *SatelliteRegistry) Systems() []byte {
	out := make([]byte, 0, len(r.seen))
	for sys := range r.seen {
		out = append(out, sys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Satellites returns the frozen ascending satellite-number list for one
// system.
func (r *SatelliteRegistry) Satellites(sys byte) []int {
	return r.lists[sys]
}

// SlotOf returns the frozen slot index of one satellite.
func (r *SatelliteRegistry) SlotOf(sys byte, num int) (int, bool) {
	slot, ok := r.slots[sys][num]
	return slot, ok
}
