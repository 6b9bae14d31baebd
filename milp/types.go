package milp

import (
	"context"
	"errors"
)

// Sentinel errors returned by model validation and solving.
// Callers must branch with errors.Is; sentinels are never redefined with
// formatted strings, context is attached via %w wrapping at the call site.
var (
	// ErrNilModel indicates that a nil *Model was passed to a Solver.
	ErrNilModel = errors.New("milp: model is nil")

	// ErrUnknownVar indicates that a constraint or objective term references
	// a variable that was never created with NewBinary.
	ErrUnknownVar = errors.New("milp: unknown variable reference")

	// ErrBadCoefficient indicates a NaN or infinite coefficient or bound in
	// the model. The solver requires finite linear data.
	ErrBadCoefficient = errors.New("milp: non-finite coefficient")

	// ErrTimeLimit indicates that the context expired before any feasible
	// assignment was found. When an incumbent exists at expiry the solver
	// returns it with StatusFeasible instead.
	ErrTimeLimit = errors.New("milp: time limit reached without a feasible assignment")
)

// Var is the index handle of a binary decision variable within one Model.
// Handles are only meaningful for the Model that created them.
type Var int

// Term is one coefficient*variable product of a linear expression.
type Term struct {
	Var   Var
	Coeff float64
}

// LinExpr is a linear expression over binary variables.
// The zero value is an empty expression and ready to use.
type LinExpr struct {
	terms []Term
}

// NewLinExpr returns a new empty linear expression.
func NewLinExpr() *LinExpr {
	return &LinExpr{}
}

// Add appends v with coefficient 1 and returns the expression.
func (e *LinExpr) Add(v Var) *LinExpr {
	return e.AddTerm(v, 1)
}

// AddTerm appends v with the given coefficient and returns the expression.
func (e *LinExpr) AddTerm(v Var, coeff float64) *LinExpr {
	e.terms = append(e.terms, Term{Var: v, Coeff: coeff})

	return e
}

// Terms returns a copy of the expression's terms.
func (e *LinExpr) Terms() []Term {
	out := make([]Term, len(e.terms))
	copy(out, e.terms)

	return out
}

// ConstrKind is the relation of a linear constraint to its right-hand side.
type ConstrKind int

const (
	// LE constrains the expression to be at most the right-hand side.
	LE ConstrKind = iota

	// GE constrains the expression to be at least the right-hand side.
	GE

	// EQ constrains the expression to equal the right-hand side.
	EQ
)

// String renders the relation symbol.
func (k ConstrKind) String() string {
	switch k {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	default:
		return "?"
	}
}

// Constraint is one named linear (in)equality of a Model.
type Constraint struct {
	// Name identifies the constraint in diagnostics; it does not affect solving.
	Name string

	// Expr is the left-hand side linear expression.
	Expr *LinExpr

	// Kind relates Expr to RHS.
	Kind ConstrKind

	// RHS is the right-hand side constant.
	RHS float64
}

// Status is the outcome classification of a solve.
type Status int

const (
	// StatusNoSolution means the solver terminated without classifying the
	// model; no assignment is available.
	StatusNoSolution Status = iota

	// StatusOptimal means the returned assignment is proven optimal.
	StatusOptimal

	// StatusFeasible means the returned assignment satisfies all constraints
	// but optimality was not proven (time budget expired).
	StatusFeasible

	// StatusInfeasible means no assignment satisfies all constraints.
	StatusInfeasible
)

// String renders the status for logs and error context.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "no-solution"
	}
}

// HasSolution reports whether an assignment is available for this status.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Solution is the read-only outcome of one solve.
type Solution struct {
	// Status classifies the outcome.
	Status Status

	// Values holds the assignment per variable, indexed by Var.
	// Empty unless Status.HasSolution().
	Values []float64

	// Objective is the objective value of the assignment.
	Objective float64
}

// Value returns the assignment of v, or 0 if v is out of range.
func (s *Solution) Value(v Var) float64 {
	if int(v) < 0 || int(v) >= len(s.Values) {
		return 0
	}

	return s.Values[v]
}

// IsOptimal reports whether the assignment is proven optimal.
func (s *Solution) IsOptimal() bool { return s.Status == StatusOptimal }

// HasSolution reports whether the solution carries a usable assignment.
func (s *Solution) HasSolution() bool { return s.Status.HasSolution() }

// Solver is the backend boundary: any engine accepting the model triple and
// returning an assignment plus status. The context carries the only time
// budget; there is no other mid-solve cancellation signal.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
