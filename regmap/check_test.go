package regmap

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		width int
		count int
		m     Map
		good  bool
	}{
		{
			name: "full single register", width: 16, count: 1,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 8},
				{Name: "B", Reg: 0, Offs: 8, Width: 8},
			},
			good: true,
		},
		{
			name: "example map", width: 16, count: 2,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 8},
				{Name: "B", Reg: 0, Offs: 8, Width: 8},
				{Name: "C", Reg: 1, Offs: 0, Width: 16},
			},
			good: true,
		},
		{
			name: "whole register gap", width: 8, count: 3,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 8},
				{Name: "B", Reg: 2, Offs: 0, Width: 8},
			},
			good: true,
		},
		{
			name: "multi-register field", width: 8, count: 4,
			m: Map{
				{Name: "WIDE", Reg: 0, Offs: 0, Width: 24},
				{Name: "TAIL", Reg: 3, Offs: 0, Width: 8},
			},
			good: true,
		},
		{
			name: "descending field", width: 8, count: 2,
			m: Map{
				{Name: "DN", Reg: 1, Offs: 0, Width: 16, Flags: Descend},
			},
			good: true,
		},
		{
			name: "reserved fillers may repeat", width: 8, count: 2,
			m: Map{
				{Name: "_res", Reg: 0, Offs: 0, Width: 8},
				{Name: "_res", Reg: 1, Offs: 0, Width: 8},
			},
			good: true,
		},
		{
			name: "duplicate names", width: 16, count: 1,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 8},
				{Name: "A", Reg: 0, Offs: 8, Width: 8},
			},
			good: false,
		},
		{
			name: "overlapping ranges", width: 16, count: 1,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 12},
				{Name: "B", Reg: 0, Offs: 8, Width: 8},
			},
			good: false,
		},
		{
			name: "partial register coverage", width: 16, count: 1,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 8},
			},
			good: false,
		},
		{
			name: "field past the window", width: 8, count: 2,
			m: Map{
				{Name: "A", Reg: 1, Offs: 0, Width: 16},
			},
			good: false,
		},
		{
			name: "zero width field", width: 8, count: 1,
			m: Map{
				{Name: "A", Reg: 0, Offs: 0, Width: 0},
			},
			good: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, hw := newTestDevice(t, tt.width, tt.count, tt.m)

			err := d.Check()

			if tt.good && err != nil {
				t.Fatalf("Check: %v", err)
			}
			if !tt.good && err == nil {
				t.Fatal("Check passed a malformed map")
			}

			// the checks never touch the physical device
			if len(hw.reads) != 0 || len(hw.writes) != 0 {
				t.Errorf("hardware traffic during Check: reads=%v writes=%v",
					hw.reads, hw.writes)
			}
		})
	}
}

func TestCheckEmptyMap(t *testing.T) {
	d, _ := newTestDevice(t, 8, 1, nil)

	err := d.Check()
	if err == nil {
		t.Fatal("expected error for empty map")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestCheckRestoresState(t *testing.T) {
	m := Map{
		{Name: "A", Reg: 0, Offs: 0, Width: 8},
		{Name: "B", Reg: 0, Offs: 8, Width: 8},
	}
	d, _ := newTestDevice(t, 16, 1, m, WithFlags(Volatile))

	if err := d.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	if d.Flags() != Volatile {
		t.Errorf("flags = %v, want Volatile restored", d.Flags())
	}
	for i, word := range d.buf {
		if word != 0 {
			t.Errorf("buf[%d] = %#x, want cleared", i, word)
		}
	}
	if d.locked {
		t.Error("device left locked after Check")
	}
}

func TestCheckHoldsLock(t *testing.T) {
	locks, unlocks := 0, 0
	hw := newTestHW(1)

	m := Map{{Name: "A", Reg: 0, Offs: 0, Width: 8}}
	d, err := New(8, 1, hw.read, hw.write,
		WithMap(m),
		WithLock(
			func() error { locks++; return nil },
			func() error { unlocks++; return nil },
		))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := d.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	// one lock spanning the whole check; the field writes inside run on
	// the already-held lock rather than taking their own
	if locks != 1 || unlocks != 1 {
		t.Errorf("lock/unlock = %d/%d, want 1/1", locks, unlocks)
	}
}
