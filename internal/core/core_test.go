package core

import (
	"errors"
	"slices"
	"testing"
)

func TestByteGridHelpers(t *testing.T) {
	g := ByteGridFrom([][]uint8{
		{0, 1, 2},
		{2, 2, 0},
	})
	if g.W != 3 || g.H != 2 {
		t.Fatalf("unexpected size %dx%d", g.W, g.H)
	}
	if got := g.At(2, 0); got != 2 {
		t.Fatalf("At(2,0)=%d, expected 2", got)
	}
	if got := g.Count(2); got != 3 {
		t.Fatalf("Count(2)=%d, expected 3", got)
	}
	if g.InBounds(3, 0) || g.InBounds(0, -1) || !g.InBounds(2, 1) {
		t.Fatal("InBounds must clip without wrapping")
	}

	c := g.Clone()
	c.Set(0, 0, 2)
	if g.At(0, 0) != 0 {
		t.Fatal("Clone must not share storage")
	}
	if g.Equal(c) {
		t.Fatal("grids differ after Set")
	}
	if !slices.Equal(g.Rows()[1], []uint8{2, 2, 0}) {
		t.Fatalf("unexpected row %v", g.Rows()[1])
	}
}

func TestNewByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -4)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d", g.W, g.H)
	}
}

type sample struct {
	Width int     `validate:"gt=0"`
	P     float64 `validate:"gte=0,lte=1"`
}

func TestValidateStructReturnsConfigError(t *testing.T) {
	if err := ValidateStruct(sample{Width: 1, P: 0.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateStruct(sample{Width: 1, P: 1.5})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "sample.P" {
		t.Fatalf("unexpected field %q", cfgErr.Field)
	}
}

func TestRegistryBuild(t *testing.T) {
	if _, err := Build("no-such-sim", nil); err == nil {
		t.Fatal("expected unknown sim error")
	}
}
