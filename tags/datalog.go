package tags

import (
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
)

// closureProgram derives enabled/1 as the fixpoint of selected/1 over implies/2.
const closureProgram = `
Decl selected(Tag).
Decl implies(Parent, Child).

enabled(T) :- selected(T).
enabled(C) :- enabled(P), implies(P, C).
`

var (
	selectedSym = ast.PredicateSym{Symbol: "selected", Arity: 1}
	impliesSym  = ast.PredicateSym{Symbol: "implies", Arity: 2}
	enabledSym  = ast.PredicateSym{Symbol: "enabled", Arity: 1}
)

// ResolveDatalog computes the same closure as Resolve by evaluating a Mangle
// program. Evaluation is bottom-up to a fixpoint, so cycles need no guard.
func ResolveDatalog(roots Set, h Hierarchy) (Set, error) {
	unit, err := parse.Unit(strings.NewReader(closureProgram))
	if err != nil {
		return nil, fmt.Errorf("parse closure program: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyze closure program: %w", err)
	}

	var base factstore.FactStoreWithRemove = factstore.NewSimpleInMemoryStore()
	store := factstore.NewConcurrentFactStore(base)
	for tag := range roots {
		store.Add(ast.Atom{Predicate: selectedSym, Args: []ast.BaseTerm{ast.String(tag)}})
	}
	for parent, children := range h {
		for child := range children {
			store.Add(ast.Atom{Predicate: impliesSym, Args: []ast.BaseTerm{ast.String(parent), ast.String(child)}})
		}
	}

	if _, err := mengine.EvalProgramWithStats(programInfo, store); err != nil {
		return nil, fmt.Errorf("evaluate closure program: %w", err)
	}

	resolved := make(Set)
	err = store.GetFacts(ast.NewQuery(enabledSym), func(atom ast.Atom) error {
		c, ok := atom.Args[0].(ast.Constant)
		if !ok || c.Type != ast.StringType {
			return fmt.Errorf("unexpected enabled term %v", atom.Args[0])
		}
		resolved[c.Symbol] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read enabled tags: %w", err)
	}
	return resolved, nil
}

// Engine names a closure implementation.
type Engine string

const (
	EngineWorklist Engine = "worklist"
	EngineDatalog  Engine = "datalog"
)

// Resolver resolves a player's tag closure.
type Resolver func(roots Set, h Hierarchy) (Set, error)

// NewResolver returns the resolver for engine. The empty engine is worklist.
func NewResolver(engine Engine) (Resolver, error) {
	switch engine {
	case "", EngineWorklist:
		return func(roots Set, h Hierarchy) (Set, error) { return Resolve(roots, h), nil }, nil
	case EngineDatalog:
		return ResolveDatalog, nil
	default:
		return nil, fmt.Errorf("unknown closure engine %q", engine)
	}
}
