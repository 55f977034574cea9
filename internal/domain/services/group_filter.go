package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// maxFilterNodes bounds the complexity of user-supplied filter expressions.
const maxFilterNodes = 1000

// GroupEnv defines the variables available during filter expression evaluation.
type GroupEnv struct {
	ID      string   `expr:"id"`
	Visible bool     `expr:"visible"`
	Widgets int      `expr:"widgets"`
	Types   []string `expr:"types"`
	Glyph   string   `expr:"glyph"`
}

// GroupFilter selects groups with an expr program. Groups it rejects are
// pruned exactly like groups with visible=false.
type GroupFilter struct {
	program    *vm.Program
	expression string
}

// CompileGroupFilter compiles expression. An empty expression matches every group.
func CompileGroupFilter(expression string) (*GroupFilter, error) {
	if expression == "" {
		return &GroupFilter{}, nil
	}
	program, err := expr.Compile(expression,
		expr.Env(GroupEnv{}),
		expr.AsBool(),
		expr.MaxNodes(maxFilterNodes))
	if err != nil {
		return nil, fmt.Errorf("invalid group filter %q: %w\nExample: id startsWith 'main' && widgets > 0", expression, err)
	}
	return &GroupFilter{program: program, expression: expression}, nil
}

// Matches evaluates the filter against group.
func (f *GroupFilter) Matches(group entities.Group) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	env := GroupEnv{
		ID:      group.ID.String(),
		Visible: group.Visible,
		Widgets: len(group.Widgets),
		Glyph:   entities.GlyphOrEmpty(group.Glyph).String(),
	}
	for _, w := range group.Widgets {
		env.Types = append(env.Types, string(w.Source.Kind()))
	}

	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("group filter %q failed on group %s: %w", f.expression, group.ID, err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("group filter %q did not return boolean: %v", f.expression, output)
	}
	return result, nil
}
