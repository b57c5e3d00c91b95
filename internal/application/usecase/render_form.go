package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/catalog"
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/form"
	"github.com/bnema/eve/internal/logging"
	"github.com/bnema/eve/internal/schema"
)

// RenderFormUseCase builds the form of one section of a stored document.
type RenderFormUseCase struct {
	repo    port.DocumentRepository
	catalog *catalog.Service
	opts    editor.Options
}

// NewRenderFormUseCase creates a new RenderFormUseCase.
func NewRenderFormUseCase(repo port.DocumentRepository, cat *catalog.Service, opts editor.Options) *RenderFormUseCase {
	return &RenderFormUseCase{repo: repo, catalog: cat, opts: opts}
}

// RenderFormInput names the document and the section.
type RenderFormInput struct {
	Path   string
	Target Target
	// State carries collapsed groups and drafts between renders. Nil starts fresh.
	State *form.State
}

// RenderFormOutput is the rendered form. The board section has no schema
// form; Boards lists the catalog of its target instead.
type RenderFormOutput struct {
	Selection   entity.Selection
	Title       string
	DocsURL     string
	Widget      form.Widget
	Boards      *entity.BoardCatalog
	BoardTarget string
	// Store holds the document; widget callbacks edit it.
	Store *editor.Store
}

// Execute loads the document, fetches the section schema and renders it.
// Widget callbacks write through the returned store and do not persist.
func (uc *RenderFormUseCase) Execute(ctx context.Context, input RenderFormInput) (*RenderFormOutput, error) {
	log := logging.FromContext(ctx)

	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	store := editor.New(text, uc.opts)
	if pe := store.ParseError(); pe != nil {
		return nil, fmt.Errorf("parse %s: %w", input.Path, pe)
	}

	sel, err := selectTarget(store, input.Target)
	if err != nil {
		return nil, err
	}

	state := input.State
	if state == nil {
		state = form.NewState()
	}
	out := &RenderFormOutput{Selection: sel, Store: store}

	if sel.Kind == entity.SelectCore && sel.Key == "board" {
		target := "esp32"
		if ref := store.BoardContext(); ref != nil {
			target = ref.Target
		}
		boards, err := uc.catalog.EnsureBoards(ctx, target)
		if err != nil {
			return nil, err
		}
		out.Title = "Board"
		out.Boards = boards
		out.BoardTarget = target
		return out, nil
	}

	var (
		node schema.Node
		docs *entity.Docs
	)
	if sel.Kind == entity.SelectCore {
		resp, err := uc.catalog.EnsureCoreSchema(ctx, sel.Key)
		if err != nil {
			return nil, err
		}
		node, docs, out.Title = resp.Schema, resp.Docs, resp.DisplayName
	} else {
		resp, err := uc.catalog.EnsureSchema(ctx, sel.Domain, sel.Platform)
		if err != nil {
			return nil, err
		}
		node, docs, out.Title = resp.Schema, resp.Docs, resp.DisplayName
	}
	if out.Title == "" {
		out.Title = sel.String()
	}
	if docs != nil && docs.URL != nil {
		out.DocsURL = *docs.URL
	}

	env := store.FormEnv(state, nil)
	write := func(next any) {
		if form.IsUnset(next) {
			next = nil
		}
		if err := store.WriteSelected(next); err != nil {
			store.ReportError(err.Error())
		}
	}
	root := form.NewPath(sel.String())
	value := store.ReadSelected()

	if obj, ok := node.(*schema.Object); ok {
		m, _ := value.(*document.Mapping)
		var hidden []string
		if sel.Kind != entity.SelectCore {
			hidden = append(hidden, "platform")
		}
		out.Widget = form.RenderObject(env, root, obj, m, func(next *document.Mapping) { write(next) }, hidden...)
	} else {
		out.Widget = form.Render(env, root, node, value, write)
	}

	log.Debug().
		Str("path", input.Path).
		Str("selection", sel.String()).
		Msg("form rendered")
	return out, nil
}
