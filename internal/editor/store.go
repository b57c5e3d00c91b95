// Package editor holds the config store: the canonical document text, the
// tree parsed from it, and the disabled blocks embedded in it. Every edit
// goes through UpdateConfig, which rewrites the text and parses it again so
// the text always stays the source of truth.
package editor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
)

// DefaultCoreKeys is the canonical order of core sections. "board" stands
// for the esp32/esp8266 platform section.
var DefaultCoreKeys = []string{
	"esphome",
	"board",
	"wifi",
	"logger",
	"api",
	"ota",
	"mqtt",
	"web_server",
	"captive_portal",
}

// DefaultOptionalCoreKeys are the core sections that can be switched off.
var DefaultOptionalCoreKeys = []string{
	"wifi",
	"logger",
	"api",
	"ota",
	"mqtt",
	"web_server",
	"captive_portal",
}

// DefaultText is the document a new store starts from.
const DefaultText = `esphome:
  name: demo

esp32:
  board: esp32dev

logger:

api:

ota:
  platform: esphome

wifi:
  ssid: !secret wifi_ssid
  password: !secret wifi_password
`

// Scheduler runs a task later, after the current store call has finished.
type Scheduler func(task func())

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Registry         *document.Registry
	CoreKeys         []string
	OptionalCoreKeys []string
	// Components is the known component catalog, used to repair items filed
	// under an empty domain key.
	Components []entity.ComponentRef
	// Scheduler defers the empty-domain self-correction. The default runs
	// queued tasks when the outermost store call returns.
	Scheduler Scheduler
	Logger    zerolog.Logger
	// DefaultName is the esphome name used when the section is created.
	DefaultName string
	// MaxHighlights caps validator highlights. Zero means
	// MaxValidationHighlights.
	MaxHighlights int
}

// Hooks let a transaction edit the disabled blocks alongside the tree. The
// maps are keyed like the registry's Extract methods.
type Hooks struct {
	MutateDisabledCoreBlocks      func(blocks map[string]string, draft *document.Mapping)
	MutateDisabledComponentBlocks func(blocks map[string]string, draft *document.Mapping)
}

// Store is the editor state. It is not safe for concurrent use; callers run
// it on a single event loop.
type Store struct {
	registry     *document.Registry
	coreKeys     []string
	optionalCore map[string]bool
	components   []entity.ComponentRef
	scheduler    Scheduler
	logger       zerolog.Logger
	defaultName  string
	maxIssues    int

	text      string
	config    *document.Mapping
	lastValid *document.Mapping
	parseErr  *document.ParseError
	message   string

	selection         entity.Selection
	boardPickerOpen   bool
	boardPickerReturn *entity.Selection
	focus             *document.Position

	issues []entity.ValidateIssue

	listeners []func()

	autoFixing bool
	depth      int
	queue      []func()
	draining   bool
}

// New returns a store holding text.
func New(text string, opts Options) *Store {
	s := &Store{
		registry:    opts.Registry,
		coreKeys:    opts.CoreKeys,
		components:  opts.Components,
		scheduler:   opts.Scheduler,
		logger:      opts.Logger.With().Str("component", "editor").Logger(),
		defaultName: opts.DefaultName,
		maxIssues:   opts.MaxHighlights,
		config:      document.NewMapping(),
		lastValid:   document.NewMapping(),
		selection:   entity.CoreSelection("esphome"),
	}
	if s.registry == nil {
		s.registry = document.NewRegistry("")
	}
	if len(s.coreKeys) == 0 {
		s.coreKeys = DefaultCoreKeys
	}
	optional := opts.OptionalCoreKeys
	if optional == nil {
		optional = DefaultOptionalCoreKeys
	}
	s.optionalCore = make(map[string]bool, len(optional))
	for _, k := range optional {
		s.optionalCore[k] = true
	}
	if s.maxIssues <= 0 {
		s.maxIssues = MaxValidationHighlights
	}
	if s.defaultName == "" {
		s.defaultName = "demo"
	}
	if s.scheduler == nil {
		s.scheduler = func(task func()) { s.queue = append(s.queue, task) }
	}

	s.enter()
	defer s.leave()
	s.text = text
	s.reparse()
	return s
}

// Text returns the canonical document text.
func (s *Store) Text() string { return s.text }

// Config returns the current tree. While the text does not parse it is the
// last tree that did. Callers must not modify it.
func (s *Store) Config() *document.Mapping { return s.config }

// ParseError returns the error of the current text, or nil.
func (s *Store) ParseError() *document.ParseError { return s.parseErr }

// Message returns the last user-facing diagnostic.
func (s *Store) Message() string { return s.message }

// Registry returns the disabled-block registry the store writes with.
func (s *Store) Registry() *document.Registry { return s.registry }

// CoreKeys returns the canonical core section order.
func (s *Store) CoreKeys() []string { return s.coreKeys }

// IsOptionalCore reports whether a core section can be switched off.
func (s *Store) IsOptionalCore(key string) bool { return s.optionalCore[key] }

// SetComponents replaces the known component catalog.
func (s *Store) SetComponents(components []entity.ComponentRef) {
	s.enter()
	defer s.leave()
	s.components = components
	s.reparse()
	s.notify()
}

// ReportError records a diagnostic from a collaborator, such as a failed
// schema fetch.
func (s *Store) ReportError(msg string) {
	s.message = msg
	s.notify()
}

// OnChange registers fn to run after every state change.
func (s *Store) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// SetText replaces the document with user-edited text. Invalid text is kept
// for editing while the last valid tree stays in Config.
func (s *Store) SetText(text string) {
	s.enter()
	defer s.leave()
	s.text = text
	s.reparse()
	s.issues = nil
	s.notify()
}

// UpdateConfig applies mutate to a deep copy of the tree, lets hooks edit the
// disabled blocks, then rewrites and re-parses the text. An encoding error
// leaves the store unchanged. A parse error of the rewritten text is
// returned; the text is kept and the previous tree stays current.
func (s *Store) UpdateConfig(mutate func(draft *document.Mapping), hooks *Hooks) error {
	s.enter()
	defer s.leave()

	draft := document.CloneMapping(s.config)
	disabledCore := s.registry.ExtractCoreBlocks(s.text)
	disabledComponents := s.registry.ExtractComponentBlocks(s.text)

	if mutate != nil {
		mutate(draft)
	}
	if msg := s.repairEmptyDomain(draft); msg != "" {
		s.message = msg
	}
	if hooks != nil {
		if hooks.MutateDisabledCoreBlocks != nil {
			hooks.MutateDisabledCoreBlocks(disabledCore, draft)
		}
		if hooks.MutateDisabledComponentBlocks != nil {
			hooks.MutateDisabledComponentBlocks(disabledComponents, draft)
		}
	}
	for k := range disabledCore {
		if _, live := draft.Get(k); live {
			delete(disabledCore, k)
		}
	}

	text, err := document.Compose(draft, disabledCore, disabledComponents, document.ComposeOptions{
		CoreKeyOrder:                 s.coreKeys,
		BlankLineBetweenTopLevelKeys: true,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode document")
		return fmt.Errorf("encode document: %w", err)
	}

	s.text = text
	s.reparse()
	s.issues = nil
	s.logger.Debug().
		Int("core_blocks", len(disabledCore)).
		Int("component_blocks", len(disabledComponents)).
		Bool("valid", s.parseErr == nil).
		Msg("document updated")
	s.notify()

	if s.parseErr != nil {
		return fmt.Errorf("re-parse document: %w", s.parseErr)
	}
	return nil
}

// reparse refreshes the tree from the text and schedules the empty-domain
// self-correction when needed.
func (s *Store) reparse() {
	cfg, err := document.ParseConfig(s.text)
	if err != nil {
		var pe *document.ParseError
		if !errors.As(err, &pe) {
			pe = &document.ParseError{Msg: err.Error()}
		}
		s.parseErr = pe
		s.config = s.lastValid
		return
	}
	s.parseErr = nil
	s.config = cfg
	s.lastValid = cfg

	if s.autoFixing || len(s.components) == 0 || !hasEmptyDomain(cfg) {
		return
	}
	s.autoFixing = true
	s.scheduler(func() {
		defer func() { s.autoFixing = false }()
		if err := s.UpdateConfig(nil, nil); err != nil {
			s.logger.Warn().Err(err).Msg("empty domain self-correction failed")
		}
	})
}

func (s *Store) enter() {
	s.depth++
}

// leave runs queued tasks once the outermost call returns.
func (s *Store) leave() {
	s.depth--
	if s.depth > 0 || s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()
	for len(s.queue) > 0 {
		task := s.queue[0]
		s.queue = s.queue[1:]
		task()
	}
}
