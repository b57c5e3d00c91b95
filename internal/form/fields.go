package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/eve/internal/document"
)

var secretInput = regexp.MustCompile(`(?i)^\s*!secret\s+(.+?)\s*$`)

// ParseTextInput reads the text of a string field. Empty text removes the
// field and "!secret <key>" becomes a secret reference.
func ParseTextInput(text string) any {
	if strings.TrimSpace(text) == "" {
		return Unset
	}
	if m := secretInput.FindStringSubmatch(text); m != nil {
		return document.Secret{Key: m[1]}
	}
	return text
}

func (r *renderer) textInput(multiline bool) Widget {
	w := &TextInput{
		Path:        r.path.String(),
		Label:       r.label,
		Value:       textValue(r.value),
		Masked:      r.ui.Secret || r.keyHas("password"),
		Multiline:   multiline,
		Suggestions: suggestionsFor(r.key),
	}
	tagged, isTagged := r.value.(document.Tagged)
	w.Set = func(text string) {
		next := ParseTextInput(text)
		if s, ok := next.(string); ok && isTagged {
			next = document.Tagged{Tag: tagged.Tag, Value: s}
		}
		r.onChange(next)
	}
	return w
}

func textValue(v any) string {
	switch x := v.(type) {
	case string, document.Secret, document.Tagged:
		return document.FormatScalar(x)
	}
	return ""
}

func (r *renderer) numberInput(integer bool) Widget {
	text := ""
	if document.IsNumber(r.value) {
		text = document.FormatScalar(r.value)
	}
	return &NumberInput{
		Path:    r.path.String(),
		Label:   r.label,
		Value:   text,
		Integer: integer,
		Set: func(raw string) {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				r.onChange(Unset)
				return
			}
			if n, ok := ParseNumber(raw, integer); ok {
				r.onChange(n)
			}
		},
	}
}

// ParseNumber parses a number field. Integers come back as int, others as
// float64; non-finite input is rejected.
func ParseNumber(raw string, integer bool) (any, bool) {
	if integer {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return f, true
}

func (r *renderer) pinPicker(capabilities []string) Widget {
	key := r.path.String()
	w := &PinPicker{
		Path:         key,
		Label:        r.label,
		Value:        textValue(r.value),
		Board:        r.env.Board,
		Capabilities: capabilities,
		Choose: func(pin string) {
			r.onChange(ParseTextInput(pin))
		},
		OpenBoardSettings: func() {
			r.env.State.PendingPin = key
			if r.env.OpenBoardPicker != nil {
				r.env.OpenBoardPicker()
			}
			r.env.requestUpdate()
		},
	}
	if r.env.Board != nil && r.env.State.PendingPin == key {
		w.AutoOpen = true
		r.env.State.PendingPin = ""
	}
	return w
}

type rawYAMLOptions struct {
	automation bool
	codeHint   bool
}

// renderRawYAML edits a value as YAML text. The text being typed is kept as
// a draft; the value only changes when the draft parses.
func renderRawYAML(env Env, path Path, label string, value any, onChange ChangeFunc, opts rawYAMLOptions) Widget {
	key := path.String()
	text, hasDraft := env.State.yamlDraft(key)
	if !hasDraft {
		text = canonicalYAML(value)
	}

	w := &CodeEditor{
		Path:       key,
		Label:      label,
		Text:       text,
		Automation: opts.automation,
		CodeHint:   opts.codeHint,
	}
	if hasDraft {
		if _, err := document.Parse(text); err != nil {
			w.Invalid = true
		}
	}
	w.Set = func(next string) {
		if strings.TrimSpace(next) == "" {
			if e, ok := env.State.Lookup(key); ok {
				e.YAMLDraft = nil
			}
			env.requestUpdate()
			onChange(Unset)
			return
		}
		draft := next
		env.State.Entry(key).YAMLDraft = &draft
		env.requestUpdate()
		v, err := document.Parse(next)
		if err != nil {
			return
		}
		onChange(v)
	}
	if env.JumpTo != nil {
		keys := path.Keys()
		w.JumpToSource = func() { env.JumpTo(keys) }
	}
	return w
}

func canonicalYAML(v any) string {
	if v == nil {
		return ""
	}
	text, err := document.Serialize(v)
	if err != nil {
		return document.FormatScalar(v)
	}
	return strings.TrimRight(text, " \n")
}
