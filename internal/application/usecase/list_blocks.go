package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/editor"
)

// ListBlocksUseCase lists the disabled blocks embedded in a document.
type ListBlocksUseCase struct {
	repo port.DocumentRepository
	opts editor.Options
}

// NewListBlocksUseCase creates a new ListBlocksUseCase.
func NewListBlocksUseCase(repo port.DocumentRepository, opts editor.Options) *ListBlocksUseCase {
	return &ListBlocksUseCase{repo: repo, opts: opts}
}

// ListBlocksInput names the document.
type ListBlocksInput struct {
	Path string
}

// BlockInfo describes one disabled block.
type BlockInfo struct {
	Key      string
	Domain   string
	Platform string
	Hash     string
	// Line is the 1-based line of the marker comment.
	Line int
	Text string
}

// ListBlocksOutput lists core blocks and component blocks, each sorted by key.
type ListBlocksOutput struct {
	Core       []BlockInfo
	Components []BlockInfo
}

// Execute extracts the disabled blocks. The document does not have to parse.
func (uc *ListBlocksUseCase) Execute(ctx context.Context, input ListBlocksInput) (*ListBlocksOutput, error) {
	text, err := uc.repo.Read(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	reg := uc.opts.Registry
	if reg == nil {
		reg = document.NewRegistry("")
	}

	out := &ListBlocksOutput{}
	for key, block := range reg.ExtractCoreBlocks(text) {
		info := BlockInfo{Key: key, Text: block}
		if pos, ok := reg.LocateBlock(text, false, key); ok {
			info.Line = pos.Line
		}
		out.Core = append(out.Core, info)
	}
	for key, block := range reg.ExtractComponentBlocks(text) {
		info := BlockInfo{Key: key, Text: block}
		info.Domain, info.Platform, info.Hash, _ = document.SplitComponentKey(key)
		if pos, ok := reg.LocateBlock(text, true, key); ok {
			info.Line = pos.Line
		}
		out.Components = append(out.Components, info)
	}
	sort.Slice(out.Core, func(i, j int) bool { return out.Core[i].Key < out.Core[j].Key })
	sort.Slice(out.Components, func(i, j int) bool { return out.Components[i].Key < out.Components[j].Key })
	return out, nil
}
