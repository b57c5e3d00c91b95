// Package form turns a schema tree and a document value into a tree of
// widgets. Widgets carry their current display value and callbacks; every
// edit reaches the caller's ChangeFunc as a full replacement value, and the
// caller writes it back to the document.
package form

import "github.com/bnema/eve/internal/domain/entity"

// Widget is one node of a rendered form.
type Widget interface {
	widget()
}

// Form is an object's fields. Divider is the index of the first optional
// field when both required and optional fields are shown, otherwise -1.
type Form struct {
	Path    string
	Fields  []Widget
	Divider int
}

// Group is a collapsible section. Body is nil while collapsed.
type Group struct {
	Path      string
	Title     string
	Collapsed bool
	Toggle    func()
	Body      Widget
}

// TextInput edits a string, secret reference or id.
type TextInput struct {
	Path        string
	Label       string
	Value       string
	Masked      bool
	Multiline   bool
	Suggestions []string
	Set         func(text string)
}

// NumberInput edits an int, float or number.
type NumberInput struct {
	Path    string
	Label   string
	Value   string
	Integer bool
	Set     func(text string)
}

// Switch edits a boolean.
type Switch struct {
	Path    string
	Label   string
	Checked bool
	Set     func(on bool)
}

// ChoiceOption is one button of a Choice.
type ChoiceOption struct {
	Label  string
	Value  any
	Active bool
}

// Choice picks one enum option.
type Choice struct {
	Path    string
	Label   string
	Options []ChoiceOption
	Choose  func(i int)
}

// ReadOnly shows a fixed value.
type ReadOnly struct {
	Path  string
	Label string
	Text  string
}

// PinPicker chooses a board pin. Without a board, OpenBoardSettings asks the
// host for one and the picker opens once it is set.
type PinPicker struct {
	Path              string
	Label             string
	Value             string
	Board             *entity.BoardRef
	Capabilities      []string
	AutoOpen          bool
	Choose            func(pin string)
	OpenBoardSettings func()
}

// CodeEditor edits a raw YAML value. Invalid is set while the draft text
// does not parse; the document keeps its last valid value meanwhile.
type CodeEditor struct {
	Path         string
	Label        string
	Text         string
	Automation   bool
	CodeHint     bool
	Invalid      bool
	Set          func(text string)
	JumpToSource func()
}

// ListRow is one item of a List.
type ListRow struct {
	Item   Widget
	Remove func()
}

// List edits an array.
type List struct {
	Path  string
	Label string
	Rows  []ListRow
	Add   func()
}

// MapEntry is one key of a MapEditor.
type MapEntry struct {
	Key    string
	Rename func(newKey string)
	Remove func()
	Value  Widget
}

// MapEditor edits a mapping with free-form keys.
type MapEditor struct {
	Path          string
	Label         string
	Entries       []MapEntry
	DraftKey      string
	DraftValue    string
	SetDraftKey   func(string)
	SetDraftValue func(string)
	Add           func()
}

// AnyOf switches between alternative schemas. Alternatives is empty when
// there is only one usable option.
type AnyOf struct {
	Path         string
	Label        string
	Alternatives []string
	Selected     int
	Select       func(i int)
	Body         Widget
}

// Unsupported marks a schema the form cannot edit.
type Unsupported struct {
	Path    string
	Label   string
	Message string
}

func (*Form) widget()        {}
func (*Group) widget()       {}
func (*TextInput) widget()   {}
func (*NumberInput) widget() {}
func (*Switch) widget()      {}
func (*Choice) widget()      {}
func (*ReadOnly) widget()    {}
func (*PinPicker) widget()   {}
func (*CodeEditor) widget()  {}
func (*List) widget()        {}
func (*MapEditor) widget()   {}
func (*AnyOf) widget()       {}
func (*Unsupported) widget() {}
