package rng

import (
	"errors"
	"testing"
)

func TestSourceReproducibility(t *testing.T) {
	s1 := New(12345)
	s2 := New(12345)

	for i := 0; i < 100; i++ {
		bound := i + 1
		v1, err := s1.Intn(bound)
		if err != nil {
			t.Fatalf("Intn(%d) returned error: %v", bound, err)
		}
		v2, err := s2.Intn(bound)
		if err != nil {
			t.Fatalf("Intn(%d) returned error: %v", bound, err)
		}
		if v1 != v2 {
			t.Fatalf("Value %d mismatch: %d != %d", i, v1, v2)
		}
	}
}

func TestSourceRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.MustIntn(5)
		if v < 0 || v >= 5 {
			t.Fatalf("MustIntn(5) = %d, want value in [0, 5)", v)
		}
	}
}

func TestSourceInvalidBound(t *testing.T) {
	tests := []int{0, -1, -100}

	s := New(1)
	for _, bound := range tests {
		_, err := s.Intn(bound)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Intn(%d) error = %v, want ErrInvalidArgument", bound, err)
		}
	}
}

func TestMustIntnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustIntn(0) should panic")
		}
	}()
	New(1).MustIntn(0)
}

func TestSeed(t *testing.T) {
	if got := New(999).Seed(); got != 999 {
		t.Errorf("Seed() = %d, want 999", got)
	}
	if got := NewFromTime().Seed(); got == 0 {
		t.Error("NewFromTime().Seed() should not be zero")
	}
}
