// Package output provides formatters for compiled instruction streams.
package output

import (
	"github.com/reglet-dev/glyphc/internal/application/dto"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// streamDocument is the serialized form of a compilation used by the json
// and yaml formatters.
type streamDocument struct {
	CompilationID string                      `json:"compilation_id" yaml:"compilation_id"`
	Source        string                      `json:"source,omitempty" yaml:"source,omitempty"`
	Font          *fontView                   `json:"font,omitempty" yaml:"font,omitempty"`
	Selection     []string                    `json:"selection" yaml:"selection"`
	Pruned        []string                    `json:"pruned,omitempty" yaml:"pruned,omitempty"`
	Instructions  []instructionView           `json:"instructions" yaml:"instructions"`
	Manifest      []entities.RegisteredHandle `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	Diagnostics   []entities.Diagnostic       `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type fontView struct {
	ID     string      `json:"id" yaml:"id"`
	Size   int         `json:"size" yaml:"size"`
	File   string      `json:"file,omitempty" yaml:"file,omitempty"`
	Glyphs []glyphView `json:"glyphs" yaml:"glyphs"`
}

type glyphView struct {
	Name      string `json:"name" yaml:"name"`
	Codepoint string `json:"codepoint" yaml:"codepoint"`
}

type instructionView struct {
	Phase  string `json:"phase" yaml:"phase"`
	Op     string `json:"op" yaml:"op"`
	Target string `json:"target" yaml:"target"`
	Text   string `json:"text" yaml:"text"`
}

func newStreamDocument(result *dto.CompileResponse) streamDocument {
	doc := streamDocument{
		CompilationID: result.CompilationID.String(),
		Source:        result.ConfigPath,
		Selection:     result.Selection,
		Manifest:      result.Registered,
		Diagnostics:   result.Diagnostics,
		Instructions:  make([]instructionView, 0, len(result.Instructions)),
	}
	if doc.Selection == nil {
		doc.Selection = []string{}
	}

	if f := result.Font; f != nil {
		view := &fontView{ID: f.ID.String(), Size: f.Size, File: f.Source, Glyphs: make([]glyphView, 0, len(f.Glyphs))}
		for _, g := range f.Glyphs {
			view.Glyphs = append(view.Glyphs, glyphView{Name: g.Name, Codepoint: entities.FormatCodepoint(g.Codepoint)})
		}
		doc.Font = view
	}

	for _, id := range result.Pruned {
		doc.Pruned = append(doc.Pruned, id.String())
	}

	for _, in := range result.Instructions {
		doc.Instructions = append(doc.Instructions, instructionView{
			Phase:  in.Phase.String(),
			Op:     string(in.Op),
			Target: in.Target.String(),
			Text:   in.String(),
		})
	}
	return doc
}
