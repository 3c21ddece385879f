package v3

import (
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	m, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Error(err)
	}
	if m.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", m.NVecs())
	}
	if m.At(1, 2) != 6 {
		Te.Errorf("wrong element: %f", m.At(1, 2))
	}
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
}

func TestVecViewAliases(Te *testing.T) {
	m := Zeros(3)
	v := m.VecView(1)
	v.Set(0, 0, 42.0)
	if m.At(1, 0) != 42.0 {
		Te.Error("VecView should be a view, not a copy")
	}
}

func TestSwapVecs(Te *testing.T) {
	m, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	m.SwapVecs(0, 1)
	if m.At(0, 0) != 2 || m.At(1, 0) != 1 {
		Te.Error("SwapVecs did not exchange the vectors")
	}
}
