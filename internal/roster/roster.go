package roster

type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsSeated    bool   `json:"is_seated"`
	IsConnected bool   `json:"is_connected"`
}

type Snapshot struct {
	Players  []Entry
	LeaderID string
}

// Update carries only the fields that changed.
type Update struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	IsSeated    *bool   `json:"is_seated,omitempty"`
	IsConnected *bool   `json:"is_connected,omitempty"`
}

type Diff struct {
	Added    []Entry  `json:"added,omitempty"`
	Updated  []Update `json:"updated,omitempty"`
	Removed  []string `json:"removed,omitempty"`
	LeaderID *string  `json:"leader_id,omitempty"`
}

func (d *Diff) empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0 && d.LeaderID == nil
}

// Synchronizer remembers the roster last broadcast to one room and reports
// what changed since. One Synchronizer belongs to one room.
type Synchronizer struct {
	last           []Entry
	reportedLeader string
}

func New() *Synchronizer { return &Synchronizer{} }

// Compute returns the delta from the last emitted snapshot to cur, or nil
// when nothing changed. The stored snapshot is replaced only when a diff
// is returned.
func (s *Synchronizer) Compute(cur Snapshot) *Diff {
	prev := make(map[string]Entry, len(s.last))
	for _, e := range s.last {
		prev[e.ID] = e
	}
	now := make(map[string]struct{}, len(cur.Players))

	d := &Diff{}
	for _, e := range cur.Players {
		now[e.ID] = struct{}{}
		old, ok := prev[e.ID]
		if !ok {
			d.Added = append(d.Added, e)
			continue
		}
		if u, changed := compare(old, e); changed {
			d.Updated = append(d.Updated, u)
		}
	}
	for _, e := range s.last {
		if _, ok := now[e.ID]; !ok {
			d.Removed = append(d.Removed, e.ID)
		}
	}
	if cur.LeaderID != s.reportedLeader {
		leader := cur.LeaderID
		d.LeaderID = &leader
	}

	if d.empty() {
		return nil
	}
	s.last = append([]Entry(nil), cur.Players...)
	if d.LeaderID != nil {
		s.reportedLeader = *d.LeaderID
	}
	return d
}

// Reset forgets the stored snapshot, as when the room goes away.
func (s *Synchronizer) Reset() {
	s.last = nil
	s.reportedLeader = ""
}

func compare(old, cur Entry) (Update, bool) {
	u := Update{ID: cur.ID}
	changed := false
	if old.Name != cur.Name {
		name := cur.Name
		u.Name = &name
		changed = true
	}
	if old.IsSeated != cur.IsSeated {
		seated := cur.IsSeated
		u.IsSeated = &seated
		changed = true
	}
	if old.IsConnected != cur.IsConnected {
		connected := cur.IsConnected
		u.IsConnected = &connected
		changed = true
	}
	return u, changed
}
