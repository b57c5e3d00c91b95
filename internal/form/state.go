package form

import "github.com/bnema/eve/internal/domain/entity"

// State is the per-widget UI state of a form, keyed by path string. It
// survives re-renders; values themselves always come from the document.
type State struct {
	entries map[string]*Entry

	// PendingPin is the pin field waiting for a board to be chosen.
	PendingPin string
}

// Entry is the UI state of one path.
type Entry struct {
	Collapsed bool
	AnyOf     *int
	YAMLDraft *string
	MapDraft  MapDraft
}

// MapDraft is the not-yet-added entry of a map editor.
type MapDraft struct {
	Key   string
	Value string
}

// NewState returns empty form state.
func NewState() *State {
	return &State{entries: make(map[string]*Entry)}
}

// Lookup returns the entry for path without creating it.
func (s *State) Lookup(path string) (*Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

// Entry returns the entry for path, creating it if needed.
func (s *State) Entry(path string) *Entry {
	if e, ok := s.entries[path]; ok {
		return e
	}
	e := &Entry{}
	s.entries[path] = e
	return e
}

// Reset drops all UI state.
func (s *State) Reset() {
	s.entries = make(map[string]*Entry)
	s.PendingPin = ""
}

func (s *State) collapsed(path string) bool {
	if e, ok := s.entries[path]; ok {
		return e.Collapsed
	}
	return false
}

func (s *State) yamlDraft(path string) (string, bool) {
	if e, ok := s.entries[path]; ok && e.YAMLDraft != nil {
		return *e.YAMLDraft, true
	}
	return "", false
}

func (s *State) mapDraft(path string) MapDraft {
	if e, ok := s.entries[path]; ok {
		return e.MapDraft
	}
	return MapDraft{}
}

// Env is what a render needs besides schema and value.
type Env struct {
	State *State

	// Board is the board the document targets, nil when none is chosen.
	Board *entity.BoardRef
	// MQTTEnabled shows MQTT-only fields.
	MQTTEnabled bool

	// RequestUpdate asks the host to render again after a UI state change.
	RequestUpdate func()
	// OpenBoardPicker asks the host to let the user choose a board.
	OpenBoardPicker func()
	// JumpTo asks the host to reveal a document key path in the text editor.
	JumpTo func(keys []any)
}

func (e Env) requestUpdate() {
	if e.RequestUpdate != nil {
		e.RequestUpdate()
	}
}
