package store

// UndoEntry records a reversible enrollment action. SessionGUID ties the
// entry to the login session that performed it; undo drops entries that
// belong to another session.
type UndoEntry struct {
	SessionGUID string
	Username    string
	CourseCode  string
}

// UndoStack is a last-in-first-out log of reversible enrollment actions.
// It lives for the process only and is never persisted, so it is cleared
// implicitly when the process exits.
type UndoStack struct {
	entries []UndoEntry
}

// NewUndoStack creates an empty undo stack.
func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// Len returns the number of entries.
func (s *UndoStack) Len() int {
	return len(s.entries)
}

// Push records an action on top of the stack.
func (s *UndoStack) Push(e UndoEntry) {
	s.entries = append(s.entries, e)
}

// Pop removes and returns the most recent entry.
// Returns false when the stack is empty.
func (s *UndoStack) Pop() (UndoEntry, bool) {
	if len(s.entries) == 0 {
		return UndoEntry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}
