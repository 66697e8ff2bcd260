// Package history implements the linear undo log of scene snapshots.
//
// The log is a sequence of snapshots plus a cursor pointing at the snapshot that
// matches the live scene. Pushing after an undo discards everything past the
// cursor, so there is never a redo branch.
package history

import "github.com/ironsheep/image-editor-mcp/internal/scene"

// Store is an append-only, truncating undo log. The zero value is not usable;
// use New.
//
// Invariant: -1 <= cursor <= len(snapshots)-1.
type Store struct {
	snapshots []scene.Snapshot
	cursor    int
}

// New returns an empty store with the cursor at -1.
func New() *Store {
	return &Store{cursor: -1}
}

// Push drops every snapshot after the cursor, appends snap and moves the cursor to it.
func (s *Store) Push(snap scene.Snapshot) {
	clear(s.snapshots[s.cursor+1:])
	s.snapshots = append(s.snapshots[:s.cursor+1], snap)
	s.cursor = len(s.snapshots) - 1
}

// Current returns the snapshot at the cursor.
func (s *Store) Current() (scene.Snapshot, bool) {
	if s.cursor < 0 {
		return scene.Snapshot{}, false
	}
	return s.snapshots[s.cursor], true
}

// CanUndo reports whether an older snapshot exists.
func (s *Store) CanUndo() bool { return s.cursor > 0 }

// Previous returns the snapshot Undo would move to, without moving the cursor.
func (s *Store) Previous() (scene.Snapshot, bool) {
	if !s.CanUndo() {
		return scene.Snapshot{}, false
	}
	return s.snapshots[s.cursor-1], true
}

// Undo moves the cursor back one step and returns the snapshot now under it.
// It returns false, leaving the cursor alone, when there is nothing older.
func (s *Store) Undo() (scene.Snapshot, bool) {
	if !s.CanUndo() {
		return scene.Snapshot{}, false
	}
	s.cursor--
	return s.snapshots[s.cursor], true
}

// Reset discards every snapshot.
func (s *Store) Reset() {
	s.snapshots = nil
	s.cursor = -1
}

// Len returns the number of retained snapshots, including any past the cursor.
func (s *Store) Len() int { return len(s.snapshots) }

// Cursor returns the index of the current snapshot, or -1 when empty.
func (s *Store) Cursor() int { return s.cursor }

// Size returns the total encoded size of all retained snapshots in bytes.
func (s *Store) Size() int {
	n := 0
	for _, snap := range s.snapshots {
		n += snap.Len()
	}
	return n
}
