package workloads

import (
	"math"
	"math/rand/v2"
	"runtime"
)

// Float is the hardware floating point element type of a Matrix.
type Float interface {
	~float32 | ~float64
}

// Matrix is a dense row-major matrix.
type Matrix[F Float] struct {
	rows [][]F
}

// NewMatrix returns a zero matrix.
func NewMatrix[F Float](rows, cols int) *Matrix[F] {
	data := make([]F, rows*cols)
	m := &Matrix[F]{rows: make([][]F, rows)}
	for i := range m.rows {
		m.rows[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// MatrixFromRows copies rows into a new matrix. All rows must have equal length.
func MatrixFromRows[F Float](rows [][]F) *Matrix[F] {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := NewMatrix[F](len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			panic("Matrix: ragged rows")
		}
		copy(m.rows[i], row)
	}
	return m
}

// Identity returns the n by n identity matrix.
func Identity[F Float](n int) *Matrix[F] {
	m := NewMatrix[F](n, n)
	for i := range n {
		m.rows[i][i] = 1
	}
	return m
}

func (m *Matrix[F]) RowCount() int { return len(m.rows) }

func (m *Matrix[F]) ColCount() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

func (m *Matrix[F]) At(i, j int) F     { return m.rows[i][j] }
func (m *Matrix[F]) Set(i, j int, v F) { m.rows[i][j] = v }

// Clone returns a deep copy.
func (m *Matrix[F]) Clone() *Matrix[F] {
	return MatrixFromRows(m.rows)
}

// Fill sets every element to a uniform random value in [lo, hi).
func (m *Matrix[F]) Fill(r *rand.Rand, lo, hi float64) {
	for _, row := range m.rows {
		for j := range row {
			row[j] = F(lo + r.Float64()*(hi-lo))
		}
	}
}

// Echelon returns the reduced row echelon form of m using Gauss-Jordan
// elimination with partial pivoting. m is left untouched.
func (m *Matrix[F]) Echelon() *Matrix[F] {
	out := m.Clone()
	rows, cols := out.RowCount(), out.ColCount()

	lead := 0
	for r := 0; r < rows && lead < cols; r++ {
		pivot := -1
		for ; lead < cols; lead++ {
			var best F
			for i := r; i < rows; i++ {
				if a := F(math.Abs(float64(out.rows[i][lead]))); a > best {
					best, pivot = a, i
				}
			}
			if pivot >= 0 {
				break
			}
		}
		if pivot < 0 {
			break
		}
		out.rows[r], out.rows[pivot] = out.rows[pivot], out.rows[r]

		pr := out.rows[r]
		p := pr[lead]
		for j := range pr {
			pr[j] /= p
		}
		for i, row := range out.rows {
			if i == r {
				continue
			}
			f := row[lead]
			if f == 0 {
				continue
			}
			for j := range row {
				row[j] -= f * pr[j]
			}
		}
		lead++
	}

	// Replace negative zeros so printed results are stable.
	for _, row := range out.rows {
		for j := range row {
			if row[j] == 0 {
				row[j] = 0
			}
		}
	}
	return out
}

const (
	matrixSize = 0x100
	matrixLo   = math.MinInt32
	matrixHi   = math.MaxInt32
)

func randomEchelon[F Float]() {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	m := NewMatrix[F](matrixSize, matrixSize)
	m.Fill(r, matrixLo, matrixHi)
	runtime.KeepAlive(m.Echelon())
}

// MatrixDouble reduces a random 256x256 float64 matrix.
func MatrixDouble() { randomEchelon[float64]() }

// MatrixSingle reduces a random 256x256 float32 matrix. float32 cannot hold
// every value of the int32 range exactly; only the speed matters here.
func MatrixSingle() { randomEchelon[float32]() }
