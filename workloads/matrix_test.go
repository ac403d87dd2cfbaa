package workloads

import (
	"math"
	"math/rand/v2"
	"testing"
)

var (
	systemRows = [][]float64{
		{2, 1, -1, 8},
		{-3, -1, 2, -11},
		{-2, 1, 2, -3},
	}
	systemRREF = [][]float64{
		{1, 0, 0, 2},
		{0, 1, 0, 3},
		{0, 0, 1, -1},
	}
)

func assertMatrixNear[F Float](t *testing.T, got *Matrix[F], want [][]float64, tol float64) {
	t.Helper()
	if got.RowCount() != len(want) || got.ColCount() != len(want[0]) {
		t.Fatalf("shape = %dx%d, want %dx%d", got.RowCount(), got.ColCount(), len(want), len(want[0]))
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(float64(got.At(i, j))-want[i][j]) > tol {
				t.Fatalf("At(%d, %d) = %v, want %v", i, j, got.At(i, j), want[i][j])
			}
		}
	}
}

func TestMatrix_EchelonSolvesSystem(t *testing.T) {
	m := MatrixFromRows(systemRows)
	assertMatrixNear(t, m.Echelon(), systemRREF, 1e-9)

	// The receiver is untouched.
	assertMatrixNear(t, m, systemRows, 0)
}

func TestMatrix_EchelonFloat32(t *testing.T) {
	rows := make([][]float32, len(systemRows))
	for i, row := range systemRows {
		rows[i] = make([]float32, len(row))
		for j, v := range row {
			rows[i][j] = float32(v)
		}
	}
	assertMatrixNear(t, MatrixFromRows(rows).Echelon(), systemRREF, 1e-4)
}

func TestMatrix_EchelonSingular(t *testing.T) {
	m := MatrixFromRows([][]float64{
		{1, 2, 3},
		{2, 4, 6},
		{0, 0, 1},
	})
	assertMatrixNear(t, m.Echelon(), [][]float64{
		{1, 2, 0},
		{0, 0, 1},
		{0, 0, 0},
	}, 1e-12)
}

func TestMatrix_EchelonOfIdentity(t *testing.T) {
	id := Identity[float64](4)
	got := id.Echelon()
	for i := range 4 {
		for j := range 4 {
			want := 0.0
			if i == j {
				want = 1
			}
			if got.At(i, j) != want {
				t.Fatalf("At(%d, %d) = %v, want %v", i, j, got.At(i, j), want)
			}
		}
	}
}

func TestMatrix_EchelonRandomIsIdentity(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	m := NewMatrix[float64](16, 16)
	m.Fill(r, -1000, 1000)

	got := m.Echelon()
	for i := range 16 {
		for j := range 16 {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(got.At(i, j)-want) > 1e-9 {
				t.Fatalf("At(%d, %d) = %v, want %v", i, j, got.At(i, j), want)
			}
		}
	}
}

func TestMatrixFromRows_RaggedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MatrixFromRows([][]float64{{1, 2}, {3}})
}

func TestBigMatrix_EchelonSolvesSystem(t *testing.T) {
	m := NewBigMatrix(3, 4, TriplePrecision)
	for i, row := range systemRows {
		for j, v := range row {
			m.SetFloat64(i, j, v)
		}
	}

	got := m.Echelon()
	for i := range systemRREF {
		for j, want := range systemRREF[i] {
			v, _ := got.At(i, j).Float64()
			if math.Abs(v-want) > 1e-15 {
				t.Fatalf("At(%d, %d) = %v, want %v", i, j, v, want)
			}
			if got.At(i, j).Prec() != TriplePrecision {
				t.Fatalf("At(%d, %d) precision = %d", i, j, got.At(i, j).Prec())
			}
		}
	}

	if v, _ := m.At(0, 0).Float64(); v != 2 {
		t.Fatalf("receiver modified: At(0, 0) = %v", v)
	}
}
