package rules

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/highrow623/pseudoregalia-archipelago/loadout"
)

// Condition is a hand-written item condition that sits outside the trick
// catalog, such as the major key door or the goal. The expression is compiled
// once and then run against each inventory.
type Condition struct {
	Name    string // human-readable identifier
	Src     string // expr source (preserved for diagnostics)
	program *vm.Program
}

// NewCondition compiles src against StateEnv.
func NewCondition(name, src string) (*Condition, error) {
	prog, err := expr.Compile(src, expr.Env(StateEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", name, err)
	}
	return &Condition{Name: name, Src: src, program: prog}, nil
}

// Evaluate runs the condition. A runtime error counts as not satisfied.
func (c *Condition) Evaluate(inv loadout.Inventory) bool {
	result, err := vm.Run(c.program, StateEnv{Inventory: inv})
	if err != nil {
		slog.Warn("condition error", "condition", c.Name, "error", err)
		return false
	}
	match, ok := result.(bool)
	return ok && match
}

// HasAllSrc builds the expression requiring every one of items.
func HasAllSrc(items ...string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "HasAll(" + strings.Join(quoted, ", ") + ")"
}

// HasSrc builds the expression requiring item.
func HasSrc(item string) string {
	return "Has(" + strconv.Quote(item) + ")"
}
