package workloads

import (
	"math/big"
	"math/rand/v2"
	"runtime"
)

// TriplePrecision is the mantissa size of an IEEE 754 binary128 float.
const TriplePrecision = 113

// BigMatrix is a dense matrix of software floats at a fixed precision.
type BigMatrix struct {
	prec uint
	rows [][]*big.Float
}

// NewBigMatrix returns a zero matrix with the given mantissa precision.
func NewBigMatrix(rows, cols int, prec uint) *BigMatrix {
	m := &BigMatrix{prec: prec, rows: make([][]*big.Float, rows)}
	for i := range m.rows {
		m.rows[i] = make([]*big.Float, cols)
		for j := range m.rows[i] {
			m.rows[i][j] = new(big.Float).SetPrec(prec)
		}
	}
	return m
}

func (m *BigMatrix) RowCount() int { return len(m.rows) }

func (m *BigMatrix) ColCount() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

// At returns element (i, j). The result aliases the matrix.
func (m *BigMatrix) At(i, j int) *big.Float { return m.rows[i][j] }

// SetFloat64 stores v at (i, j).
func (m *BigMatrix) SetFloat64(i, j int, v float64) { m.rows[i][j].SetFloat64(v) }

// Clone returns a deep copy.
func (m *BigMatrix) Clone() *BigMatrix {
	out := &BigMatrix{prec: m.prec, rows: make([][]*big.Float, len(m.rows))}
	for i, row := range m.rows {
		out.rows[i] = make([]*big.Float, len(row))
		for j, v := range row {
			out.rows[i][j] = new(big.Float).SetPrec(m.prec).Set(v)
		}
	}
	return out
}

// Echelon returns the reduced row echelon form of m. The algorithm is the
// same partial-pivoting Gauss-Jordan elimination as Matrix.Echelon.
func (m *BigMatrix) Echelon() *BigMatrix {
	out := m.Clone()
	rows, cols := out.RowCount(), out.ColCount()
	abs := new(big.Float).SetPrec(m.prec)
	best := new(big.Float).SetPrec(m.prec)
	f := new(big.Float).SetPrec(m.prec)
	tmp := new(big.Float).SetPrec(m.prec)

	lead := 0
	for r := 0; r < rows && lead < cols; r++ {
		pivot := -1
		for ; lead < cols; lead++ {
			best.SetInt64(0)
			for i := r; i < rows; i++ {
				abs.Abs(out.rows[i][lead])
				if abs.Cmp(best) > 0 {
					best.Set(abs)
					pivot = i
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
		p := new(big.Float).SetPrec(m.prec).Set(pr[lead])
		for _, v := range pr {
			v.Quo(v, p)
		}
		for i, row := range out.rows {
			if i == r || row[lead].Sign() == 0 {
				continue
			}
			f.Set(row[lead])
			for j, v := range row {
				tmp.Mul(f, pr[j])
				v.Sub(v, tmp)
			}
		}
		lead++
	}
	return out
}

// The software matrix is smaller than the hardware ones: one big.Float
// operation costs roughly a hundred float64 operations.
const bigMatrixSize = 0x20

// MatrixTriple reduces a random 32x32 matrix of 113-bit software floats.
func MatrixTriple() {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	m := NewBigMatrix(bigMatrixSize, bigMatrixSize, TriplePrecision)
	for i := range bigMatrixSize {
		for j := range bigMatrixSize {
			m.SetFloat64(i, j, matrixLo+r.Float64()*(matrixHi-matrixLo))
		}
	}
	runtime.KeepAlive(m.Echelon())
}
