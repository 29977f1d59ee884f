package gestures

import "sync"

// ArenaMember is a recognizer competing for a pointer.
type ArenaMember interface {
	// AcceptGesture is called when the member wins the pointer.
	AcceptGesture(pointerID int64)
	// RejectGesture is called when the member loses the pointer.
	RejectGesture(pointerID int64)
}

// GestureArena decides which recognizers own each pointer.
//
// The first member to call Resolve wins. Every other member loses, unless
// Simultaneous reports that it may recognize alongside the winner, in which
// case it is accepted too. Members that join an already resolved pointer are
// judged against the winners the same way.
type GestureArena struct {
	// Simultaneous reports whether member may win together with winner.
	// Nil means exclusive recognition.
	Simultaneous func(winner, member ArenaMember) bool

	mu      sync.Mutex
	entries map[int64]*arenaEntry
}

type arenaEntry struct {
	members  []ArenaMember
	winners  []ArenaMember
	resolved bool
}

// NewGestureArena creates an empty arena.
func NewGestureArena() *GestureArena {
	return &GestureArena{entries: make(map[int64]*arenaEntry)}
}

// DefaultArena is shared by recognizers created without an explicit arena.
var DefaultArena = NewGestureArena()

// Add enters member into the competition for pointer.
func (a *GestureArena) Add(pointer int64, member ArenaMember) {
	a.mu.Lock()
	entry := a.entry(pointer)
	if contains(entry.members, member) {
		a.mu.Unlock()
		return
	}
	if !entry.resolved {
		entry.members = append(entry.members, member)
		a.mu.Unlock()
		return
	}
	winners := append([]ArenaMember(nil), entry.winners...)
	a.mu.Unlock()

	if a.coexists(winners, member) {
		a.mu.Lock()
		entry.members = append(entry.members, member)
		entry.winners = append(entry.winners, member)
		a.mu.Unlock()
		member.AcceptGesture(pointer)
		return
	}
	member.RejectGesture(pointer)
}

// Resolve declares winner the owner of pointer.
func (a *GestureArena) Resolve(pointer int64, winner ArenaMember) {
	a.mu.Lock()
	entry := a.entry(pointer)
	if entry.resolved {
		if contains(entry.winners, winner) {
			a.mu.Unlock()
			return
		}
		winners := append([]ArenaMember(nil), entry.winners...)
		a.mu.Unlock()
		if a.coexists(winners, winner) {
			a.mu.Lock()
			entry.winners = append(entry.winners, winner)
			if !contains(entry.members, winner) {
				entry.members = append(entry.members, winner)
			}
			a.mu.Unlock()
			winner.AcceptGesture(pointer)
			return
		}
		winner.RejectGesture(pointer)
		return
	}
	entry.resolved = true
	others := make([]ArenaMember, 0, len(entry.members))
	for _, m := range entry.members {
		if m != winner {
			others = append(others, m)
		}
	}
	a.mu.Unlock()

	accepted := []ArenaMember{winner}
	var rejected []ArenaMember
	for _, m := range others {
		if a.Simultaneous != nil && a.Simultaneous(winner, m) {
			accepted = append(accepted, m)
		} else {
			rejected = append(rejected, m)
		}
	}

	a.mu.Lock()
	entry.winners = accepted
	entry.members = append([]ArenaMember(nil), accepted...)
	a.mu.Unlock()

	for _, m := range accepted {
		m.AcceptGesture(pointer)
	}
	for _, m := range rejected {
		m.RejectGesture(pointer)
	}
}

// Reject removes member from the competition for pointer.
func (a *GestureArena) Reject(pointer int64, member ArenaMember) {
	a.mu.Lock()
	entry, ok := a.entries[pointer]
	if !ok {
		a.mu.Unlock()
		return
	}
	entry.members = remove(entry.members, member)
	entry.winners = remove(entry.winners, member)
	if len(entry.members) == 0 {
		delete(a.entries, pointer)
	}
	a.mu.Unlock()
	member.RejectGesture(pointer)
}

// Release forgets pointer. Hosts call it once the pointer is up.
func (a *GestureArena) Release(pointer int64) {
	a.mu.Lock()
	delete(a.entries, pointer)
	a.mu.Unlock()
}

// IsResolved reports whether pointer has a winner.
func (a *GestureArena) IsResolved(pointer int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry, ok := a.entries[pointer]
	return ok && entry.resolved
}

// Winners returns the members currently owning pointer.
func (a *GestureArena) Winners(pointer int64) []ArenaMember {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry, ok := a.entries[pointer]
	if !ok {
		return nil
	}
	return append([]ArenaMember(nil), entry.winners...)
}

func (a *GestureArena) entry(pointer int64) *arenaEntry {
	if a.entries == nil {
		a.entries = make(map[int64]*arenaEntry)
	}
	entry, ok := a.entries[pointer]
	if !ok {
		entry = &arenaEntry{}
		a.entries[pointer] = entry
	}
	return entry
}

func (a *GestureArena) coexists(winners []ArenaMember, member ArenaMember) bool {
	if a.Simultaneous == nil {
		return false
	}
	for _, w := range winners {
		if !a.Simultaneous(w, member) {
			return false
		}
	}
	return true
}

func contains(list []ArenaMember, m ArenaMember) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

func remove(list []ArenaMember, m ArenaMember) []ArenaMember {
	out := list[:0]
	for _, x := range list {
		if x != m {
			out = append(out, x)
		}
	}
	return out
}
