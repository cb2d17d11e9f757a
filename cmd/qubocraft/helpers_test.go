package main

import (
	"reflect"
	"testing"
)

func TestDefaultTenure(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty problem", 0, 0},
		{"single variable", 1, 0},
		{"small problem uses N/4", 8, 2},
		{"four variables uses N/4", 4, 1},
		{"large problem capped at 20", 200, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultTenure(tt.n); got != tt.want {
				t.Errorf("defaultTenure(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestParseInit(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		n       int
		want    []int
		wantErr bool
	}{
		{"zeros", "zeros", 3, []int{0, 0, 0}, false},
		{"empty spec means zeros", "", 2, []int{0, 0}, false},
		{"ones", "ones", 3, []int{1, 1, 1}, false},
		{"explicit bits", "0,1,1,0", 4, []int{0, 1, 1, 0}, false},
		{"explicit bits with spaces", "1, 0", 2, []int{1, 0}, false},
		{"length mismatch", "0,1", 3, nil, true},
		{"non-numeric entry", "0,x,1", 3, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInit(tt.spec, tt.n, 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseInit(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseInit(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseInit_RandomIsSeededAndFeasible(t *testing.T) {
	a, err := parseInit("random", 50, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parseInit("random", 50, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("random init with the same seed must be reproducible")
	}
	for _, v := range a {
		if v != 0 && v != 1 {
			t.Fatalf("random init produced %d, want 0 or 1", v)
		}
	}
}

func TestFlagsSlice(t *testing.T) {
	flags := flagsSlice("tenure", "seed", "no-such-flag")
	if len(flags) != 2 {
		t.Fatalf("flagsSlice returned %d flags, want 2 (unknown keys skipped)", len(flags))
	}
}
