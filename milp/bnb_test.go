// Package milp_test validates the exact Branch-and-Bound backend.
// Focus:
//  1. Optimality on small models with EQ / LE / GE rows.
//  2. Infeasibility detection, including constant rows with no variables.
//  3. Strict sentinels on malformed models and on an expired budget.
//  4. Determinism under identical inputs.
package milp_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fblanch/swisscal/milp"
)

func solve(t *testing.T, m *milp.Model) *milp.Solution {
	t.Helper()
	sol, err := milp.NewBranchBound().Solve(context.Background(), m)
	require.NoError(t, err)

	return sol
}

func TestSolve_PickCheapestPair(t *testing.T) {
	m := milp.NewModel("pick-two")
	x := make([]milp.Var, 3)
	for i, cost := range []float64{1, 2, 3} {
		x[i] = m.NewBinary("x")
		m.SetObjCoef(x[i], cost)
	}
	m.AddConstraint("two-of-three",
		milp.NewLinExpr().Add(x[0]).Add(x[1]).Add(x[2]), milp.EQ, 2)

	sol := solve(t, m)
	require.Equal(t, milp.StatusOptimal, sol.Status)
	require.True(t, sol.IsOptimal())
	require.InDelta(t, 3.0, sol.Objective, 1e-9)
	require.Equal(t, []float64{1, 1, 0}, sol.Values)
}

func TestSolve_NegativeCostTakenFreely(t *testing.T) {
	m := milp.NewModel("free-gain")
	v := m.NewBinary("gain")
	m.SetObjCoef(v, -5)
	w := m.NewBinary("loss")
	m.SetObjCoef(w, 2)

	sol := solve(t, m)
	require.Equal(t, milp.StatusOptimal, sol.Status)
	require.InDelta(t, -5.0, sol.Objective, 1e-9)
	require.Equal(t, 1.0, sol.Value(v))
	require.Equal(t, 0.0, sol.Value(w))
}

func TestSolve_CoverConstraint(t *testing.T) {
	m := milp.NewModel("cover")
	a := m.NewBinary("a")
	b := m.NewBinary("b")
	m.SetObjCoef(a, 2)
	m.SetObjCoef(b, 1)
	m.AddConstraint("at-least-one", milp.NewLinExpr().Add(a).Add(b), milp.GE, 1)

	sol := solve(t, m)
	require.InDelta(t, 1.0, sol.Objective, 1e-9)
	require.Equal(t, 0.0, sol.Value(a))
	require.Equal(t, 1.0, sol.Value(b))
}

func TestSolve_MutualExclusionForcesSkip(t *testing.T) {
	// Choosing both would pay 1+1; the LE row forbids it, EQ demands one.
	m := milp.NewModel("exclusive")
	a := m.NewBinary("a")
	b := m.NewBinary("b")
	m.SetObjCoef(a, 1)
	m.SetObjCoef(b, 3)
	m.AddConstraint("either", milp.NewLinExpr().Add(a).Add(b), milp.EQ, 1)
	m.AddConstraint("not-both", milp.NewLinExpr().Add(a).Add(b), milp.LE, 1)

	sol := solve(t, m)
	require.Equal(t, milp.StatusOptimal, sol.Status)
	require.InDelta(t, 1.0, sol.Objective, 1e-9)
}

func TestSolve_Infeasible(t *testing.T) {
	m := milp.NewModel("contradiction")
	a := m.NewBinary("a")
	b := m.NewBinary("b")
	m.AddConstraint("both", milp.NewLinExpr().Add(a).Add(b), milp.EQ, 2)
	m.AddConstraint("at-most-one", milp.NewLinExpr().Add(a).Add(b), milp.LE, 1)

	sol := solve(t, m)
	require.Equal(t, milp.StatusInfeasible, sol.Status)
	require.False(t, sol.HasSolution())
	require.Empty(t, sol.Values)
}

func TestSolve_ConstantRowInfeasible(t *testing.T) {
	// An empty expression equal to 1 can never hold; the row is still
	// accepted at build time and judged at solve time.
	m := milp.NewModel("constant")
	m.NewBinary("unused")
	m.AddConstraint("impossible", nil, milp.EQ, 1)

	sol := solve(t, m)
	require.Equal(t, milp.StatusInfeasible, sol.Status)
}

func TestSolve_EmptyModelTriviallyOptimal(t *testing.T) {
	sol := solve(t, milp.NewModel("empty"))
	require.Equal(t, milp.StatusOptimal, sol.Status)
	require.Zero(t, sol.Objective)
}

func TestSolve_NilModel(t *testing.T) {
	_, err := milp.NewBranchBound().Solve(context.Background(), nil)
	require.ErrorIs(t, err, milp.ErrNilModel)
}

func TestSolve_UnknownVariable(t *testing.T) {
	m := milp.NewModel("dangling")
	m.NewBinary("x")
	m.AddConstraint("bad", milp.NewLinExpr().Add(milp.Var(7)), milp.LE, 1)

	_, err := milp.NewBranchBound().Solve(context.Background(), m)
	require.ErrorIs(t, err, milp.ErrUnknownVar)
}

func TestSolve_NonFiniteCoefficient(t *testing.T) {
	m := milp.NewModel("nan")
	v := m.NewBinary("x")
	m.SetObjCoef(v, math.NaN())

	_, err := milp.NewBranchBound().Solve(context.Background(), m)
	require.ErrorIs(t, err, milp.ErrBadCoefficient)

	m = milp.NewModel("inf-rhs")
	v = m.NewBinary("x")
	m.AddConstraint("bad", milp.NewLinExpr().Add(v), milp.LE, math.Inf(1))
	_, err = milp.NewBranchBound().Solve(context.Background(), m)
	require.ErrorIs(t, err, milp.ErrBadCoefficient)
}

func TestSolve_ExpiredBudget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := milp.NewModel("expired")
	m.NewBinary("x")
	_, err := milp.NewBranchBound().Solve(ctx, m)
	require.Error(t, err)
	require.True(t, errors.Is(err, milp.ErrTimeLimit))
}

func TestSolve_Deterministic(t *testing.T) {
	build := func() *milp.Model {
		m := milp.NewModel("det")
		vars := make([]milp.Var, 6)
		for i := range vars {
			vars[i] = m.NewBinary("v")
			m.SetObjCoef(vars[i], float64((i*7)%5))
		}
		sum := milp.NewLinExpr()
		for _, v := range vars {
			sum.Add(v)
		}
		m.AddConstraint("three", sum, milp.EQ, 3)

		return m
	}

	first := solve(t, build())
	second := solve(t, build())
	require.Equal(t, first.Values, second.Values)
	require.Equal(t, first.Objective, second.Objective)
}
