package glpksolve

import (
	"context"
	"fmt"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/fblanch/swisscal/milp"
)

// Solver drives GLPK's mixed-integer optimizer behind the milp.Solver
// boundary. The zero value is ready to use; one Solver may be reused for
// successive models, each solve builds and releases its own GLPK problem.
type Solver struct {
	// Verbose enables GLPK's own terminal output; off by default.
	Verbose bool
}

// New returns a GLPK-backed solver.
func New() *Solver {
	return &Solver{}
}

// Solve translates m, runs simplex plus the integer optimizer, and maps the
// resulting MIP status. The context is consulted only before the solve
// starts; the binding exposes no mid-solve interruption.
func (s *Solver) Solve(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
	if m == nil {
		return nil, milp.ErrNilModel
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", milp.ErrTimeLimit, err)
		}
	}

	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName(m.Name())
	lp.SetObjDir(glpk.ObjDir(glpk.MIN))

	n := m.NumVars()
	if n > 0 {
		lp.AddCols(n)
	}
	var v milp.Var
	for v = 0; int(v) < n; v++ {
		col := int(v) + 1 // GLPK columns are 1-based
		lp.SetColName(col, m.VarName(v))
		lp.SetColKind(col, glpk.VarType(glpk.BV))
		lp.SetObjCoef(col, m.ObjCoef(v))
	}

	cons := m.Constraints()
	if len(cons) > 0 {
		lp.AddRows(len(cons))
	}
	for ri, con := range cons {
		row := ri + 1
		lp.SetRowName(row, con.Name)
		switch con.Kind {
		case milp.LE:
			lp.SetRowBnds(row, glpk.BndsType(glpk.UP), 0, con.RHS)
		case milp.GE:
			lp.SetRowBnds(row, glpk.BndsType(glpk.LO), con.RHS, 0)
		default:
			lp.SetRowBnds(row, glpk.BndsType(glpk.FX), con.RHS, con.RHS)
		}
		terms := con.Expr.Terms()
		// GLPK sparse rows are 1-based with a dummy leading element.
		ind := make([]int32, len(terms)+1)
		val := make([]float64, len(terms)+1)
		for k, t := range terms {
			ind[k+1] = int32(t.Var) + 1
			val[k+1] = t.Coeff
		}
		lp.SetMatRow(row, ind, val)
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(s.msgLevel())
	if err := lp.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("glpksolve: simplex: %w", err)
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(s.msgLevel())
	if err := lp.Intopt(iocp); err != nil {
		// With presolve on, a provably infeasible MIP is reported through the
		// error path; distinguish it from operational failure.
		if st := lp.MipStatus(); st == glpk.NOFEAS {
			return &milp.Solution{Status: milp.StatusInfeasible}, nil
		}

		return nil, fmt.Errorf("glpksolve: intopt: %w", err)
	}

	switch lp.MipStatus() {
	case glpk.OPT:
		return s.assignment(lp, n, milp.StatusOptimal), nil
	case glpk.FEAS:
		return s.assignment(lp, n, milp.StatusFeasible), nil
	case glpk.NOFEAS:
		return &milp.Solution{Status: milp.StatusInfeasible}, nil
	default:
		return &milp.Solution{Status: milp.StatusNoSolution}, nil
	}
}

// assignment copies the MIP column values into a milp.Solution.
func (s *Solver) assignment(lp *glpk.Prob, n int, status milp.Status) *milp.Solution {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = lp.MipColVal(i + 1)
	}

	return &milp.Solution{Status: status, Values: values, Objective: lp.MipObjVal()}
}

func (s *Solver) msgLevel() glpk.MsgLev {
	if s.Verbose {
		return glpk.MsgLev(glpk.MSG_ON)
	}

	return glpk.MsgLev(glpk.MSG_ERR)
}
