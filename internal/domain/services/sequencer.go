package services

import (
	"fmt"
	"slices"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// InstructionSequencer orders assembled instructions so that every
// instruction comes after whatever it requires.
type InstructionSequencer struct{}

// NewInstructionSequencer creates a new sequencer
func NewInstructionSequencer() *InstructionSequencer {
	return &InstructionSequencer{}
}

// Sequence returns instructions in emission order.
//
// Phases are emitted in order (font, controller, group, widget, wiring,
// registration, derived registration). Inside a phase, instructions are
// topologically sorted with Kahn's algorithm, always taking the ready
// instruction with the lowest declaration order, so independent instructions
// keep the order the assembler produced them in.
//
// A requirement that no instruction provides, that is provided in a later
// phase, or that forms a cycle is a DependencyOrderingFault.
func (s *InstructionSequencer) Sequence(instructions []entities.Instruction) ([]entities.Instruction, error) {
	providers := make(map[entities.Key]entities.Instruction, len(instructions))
	for _, in := range instructions {
		key := in.Provides()
		if key == "" {
			continue
		}
		if prev, dup := providers[key]; dup {
			return nil, &entities.DependencyOrderingFault{
				Instruction: in.String(),
				Reason:      fmt.Sprintf("%s is already provided by %q", key, prev.String()),
			}
		}
		providers[key] = in
	}

	// Validate every requirement can be met.
	for _, in := range instructions {
		for _, req := range in.Requires() {
			p, ok := providers[req]
			if !ok {
				return nil, &entities.DependencyOrderingFault{
					Instruction: in.String(),
					Missing:     req,
					Reason:      "nothing provides it",
				}
			}
			if p.Phase > in.Phase {
				return nil, &entities.DependencyOrderingFault{
					Instruction: in.String(),
					Missing:     req,
					Reason:      fmt.Sprintf("provided in later phase %s", p.Phase),
				}
			}
		}
	}

	byPhase := make(map[entities.Phase][]entities.Instruction)
	var phases []entities.Phase
	for _, in := range instructions {
		if _, seen := byPhase[in.Phase]; !seen {
			phases = append(phases, in.Phase)
		}
		byPhase[in.Phase] = append(byPhase[in.Phase], in)
	}
	slices.Sort(phases)

	ordered := make([]entities.Instruction, 0, len(instructions))
	for _, phase := range phases {
		sorted, err := s.sortPhase(byPhase[phase])
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, sorted...)
	}
	return ordered, nil
}

// sortPhase topologically sorts the instructions of one phase. Requirements
// on earlier phases are already satisfied and ignored here.
func (s *InstructionSequencer) sortPhase(items []entities.Instruction) ([]entities.Instruction, error) {
	local := make(map[entities.Key]int, len(items)) // key -> index in items
	for i, in := range items {
		if key := in.Provides(); key != "" {
			local[key] = i
		}
	}

	inDegree := make([]int, len(items))
	dependents := make([][]int, len(items))
	for i, in := range items {
		for _, req := range in.Requires() {
			if j, ok := local[req]; ok {
				inDegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	processed := make([]bool, len(items))
	out := make([]entities.Instruction, 0, len(items))
	for len(out) < len(items) {
		next := -1
		for i := range items {
			if processed[i] || inDegree[i] > 0 {
				continue
			}
			if next == -1 || items[i].Seq < items[next].Seq {
				next = i
			}
		}

		// No progress made → cycle detected
		if next == -1 {
			for i := range items {
				if !processed[i] {
					return nil, &entities.DependencyOrderingFault{
						Instruction: items[i].String(),
						Reason:      "circular requirement within phase " + items[i].Phase.String(),
					}
				}
			}
		}

		processed[next] = true
		out = append(out, items[next])
		for _, d := range dependents[next] {
			inDegree[d]--
		}
	}
	return out, nil
}
