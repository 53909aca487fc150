package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	Name string `json:"name,omitempty"`

	// Added contains nodes present only in the new snapshot.
	Added []Node `json:"added,omitempty"`

	// Removed contains nodes present only in the old snapshot.
	Removed []Node `json:"removed,omitempty"`

	// Changed contains nodes whose state or descriptor differ, with their new value.
	Changed []Node `json:"changed,omitempty"`

	// Bound is set only when the extent changed.
	Bound *Bound `json:"bound,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// A nil oldSnap yields a diff representing the entire new snapshot (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{Name: newSnap.Name}

	if oldSnap == nil {
		diff.Added = append(diff.Added, newSnap.Nodes...)
		b := newSnap.Bound
		diff.Bound = &b
		return diff
	}

	before := oldSnap.Index()
	after := newSnap.Index()

	for _, n := range newSnap.Nodes {
		prev, ok := before[n.Coord]
		switch {
		case !ok:
			diff.Added = append(diff.Added, n)
		case prev.State != n.State || prev.Descriptor != n.Descriptor:
			diff.Changed = append(diff.Changed, n)
		}
	}
	for _, n := range oldSnap.Nodes {
		if _, ok := after[n.Coord]; !ok {
			diff.Removed = append(diff.Removed, n)
		}
	}
	if oldSnap.Bound != newSnap.Bound {
		b := newSnap.Bound
		diff.Bound = &b
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Changed) == 0 &&
		d.Bound == nil
}
