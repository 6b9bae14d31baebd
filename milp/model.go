package milp

import (
	"fmt"
	"math"
)

// Model aggregates binary variables, linear constraints and the minimization
// objective. Build one fresh per run; a Model holds no solver state and may
// be handed to any Solver backend.
type Model struct {
	name  string
	names []string
	obj   []float64
	cons  []Constraint
}

// NewModel returns an empty model with the given problem name.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the problem name.
func (m *Model) Name() string { return m.name }

// NewBinary creates a binary decision variable and returns its handle.
func (m *Model) NewBinary(name string) Var {
	m.names = append(m.names, name)
	m.obj = append(m.obj, 0)

	return Var(len(m.names) - 1)
}

// NumVars returns the number of variables created so far.
func (m *Model) NumVars() int { return len(m.names) }

// VarName returns the name of v, or the empty string if v is out of range.
func (m *Model) VarName(v Var) string {
	if int(v) < 0 || int(v) >= len(m.names) {
		return ""
	}

	return m.names[v]
}

// SetObjCoef sets the objective coefficient of v. The objective is always
// minimized. Out-of-range handles are ignored and reported by Validate.
func (m *Model) SetObjCoef(v Var, coeff float64) {
	if int(v) < 0 || int(v) >= len(m.obj) {
		return
	}
	m.obj[v] = coeff
}

// ObjCoef returns the objective coefficient of v (0 if out of range).
func (m *Model) ObjCoef(v Var) float64 {
	if int(v) < 0 || int(v) >= len(m.obj) {
		return 0
	}

	return m.obj[v]
}

// AddConstraint appends a named linear constraint. A nil expr is treated as
// the empty expression and still emitted; a constant row that cannot hold
// makes the model infeasible at solve time.
func (m *Model) AddConstraint(name string, expr *LinExpr, kind ConstrKind, rhs float64) {
	if expr == nil {
		expr = NewLinExpr()
	}
	m.cons = append(m.cons, Constraint{Name: name, Expr: expr, Kind: kind, RHS: rhs})
}

// NumConstraints returns the number of constraints added so far.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Constraints returns a copy of the constraint list.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.cons))
	copy(out, m.cons)

	return out
}

// Validate checks the model shape: every referenced variable exists and all
// coefficients and bounds are finite. Backends call this before solving.
//
// Complexity: O(vars + constraint terms).
func (m *Model) Validate() error {
	var i int
	var c float64
	for i, c = range m.obj {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: objective coefficient of %q", ErrBadCoefficient, m.names[i])
		}
	}
	n := len(m.names)
	for _, con := range m.cons {
		if math.IsNaN(con.RHS) || math.IsInf(con.RHS, 0) {
			return fmt.Errorf("%w: right-hand side of %q", ErrBadCoefficient, con.Name)
		}
		for _, t := range con.Expr.terms {
			if int(t.Var) < 0 || int(t.Var) >= n {
				return fmt.Errorf("%w: constraint %q", ErrUnknownVar, con.Name)
			}
			if math.IsNaN(t.Coeff) || math.IsInf(t.Coeff, 0) {
				return fmt.Errorf("%w: constraint %q", ErrBadCoefficient, con.Name)
			}
		}
	}

	return nil
}
