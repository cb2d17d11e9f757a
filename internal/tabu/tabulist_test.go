package tabu

import "testing"

func TestTabuList_SetAndIsTabu(t *testing.T) {
	tl := NewTabuList(3)
	for i := 0; i < 3; i++ {
		if tl.IsTabu(i) {
			t.Fatalf("variable %d tabu before any Set", i)
		}
	}
	tl.Set(1, 2)
	if !tl.IsTabu(1) {
		t.Fatal("variable 1 should be tabu after Set(1, 2)")
	}
	if tl.IsTabu(0) || tl.IsTabu(2) {
		t.Fatal("unrelated variables should remain free")
	}
}

func TestTabuList_TickDecrementsAndExpires(t *testing.T) {
	tl := NewTabuList(2)
	tl.Set(0, 2)

	tl.Tick()
	if !tl.IsTabu(0) {
		t.Fatal("variable 0 should still be tabu after one tick of a tenure-2 entry")
	}

	tl.Tick()
	if tl.IsTabu(0) {
		t.Fatal("variable 0 should have expired after two ticks of a tenure-2 entry")
	}
}

func TestTabuList_TickNeverGoesNegative(t *testing.T) {
	tl := NewTabuList(1)
	tl.Tick()
	tl.Tick()
	if tl.IsTabu(0) {
		t.Fatal("ticking a free variable repeatedly should never mark it tabu")
	}
}

func TestTabuList_SetZeroTenureIsImmediatelyFree(t *testing.T) {
	tl := NewTabuList(1)
	tl.Set(0, 0)
	if tl.IsTabu(0) {
		t.Fatal("tenure 0 should never be tabu")
	}
}
