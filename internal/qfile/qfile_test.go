package qfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rbscholtus/qubocraft/internal/tabu"
)

func TestLoad_TextMatrix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.txt")
	content := "# 2x2 test problem\n1.5, -0.5\n-0.5  2.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, meta, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Name != "small" {
		t.Errorf("meta.Name = %q, want %q", meta.Name, "small")
	}
	if meta.Cached {
		t.Error("first load should not report cached")
	}
	if len(doc.Matrix) != 2 || len(doc.Matrix[0]) != 2 {
		t.Fatalf("matrix shape = %dx%d, want 2x2", len(doc.Matrix), len(doc.Matrix[0]))
	}
	if doc.Matrix[0][0] != 1.5 || doc.Matrix[1][0] != -0.5 {
		t.Errorf("unexpected matrix contents: %v", doc.Matrix)
	}

	// The sidecar cache must exist and be used on the second load.
	if _, err := os.Stat(path + ".json"); err != nil {
		t.Fatalf("sidecar cache missing: %v", err)
	}
	doc2, meta2, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !meta2.Cached {
		t.Error("second load should come from the sidecar cache")
	}
	if doc2.Matrix[1][1] != doc.Matrix[1][1] {
		t.Error("cached matrix differs from parsed matrix")
	}
}

func TestLoad_JSONDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prob.json")
	content := `{"scale": 4, "matrix": [[-1, 2], [2, -3]]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Scale != 4 {
		t.Errorf("scale = %v, want 4", doc.Scale)
	}
	if doc.Matrix[1][1] != -3 {
		t.Errorf("matrix[1][1] = %v, want -3", doc.Matrix[1][1])
	}
}

func TestLoad_BadEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("1 x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected an error for a non-numeric entry")
	}
}

func TestSaveResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	res := tabu.SearchResult{
		BestAssignment: []uint8{0, 1, 0},
		BestEnergy:     -3.0,
		Restarts:       7,
	}
	if err := SaveResult(path, res); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"assignment"`, `"energy"`, `"restarts"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved result missing %s:\n%s", want, data)
		}
	}
}

func TestLoadParams(t *testing.T) {
	dir := t.TempDir()
	matrixPath := filepath.Join(dir, "prob.txt")

	// No sidecar: found must be false without error.
	p, found, err := LoadParams(matrixPath)
	if err != nil || found {
		t.Fatalf("LoadParams without sidecar: found=%v err=%v", found, err)
	}
	if p.Tenure != nil {
		t.Error("zero Params expected when sidecar is absent")
	}

	sidecar := matrixPath + ".yaml"
	content := "tenure: 5\nscale: 2.5\nseed: 42\n"
	if err := os.WriteFile(sidecar, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, found, err = LoadParams(matrixPath)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("sidecar exists but found=false")
	}
	if p.Tenure == nil || *p.Tenure != 5 {
		t.Errorf("tenure = %v, want 5", p.Tenure)
	}
	if p.Scale == nil || *p.Scale != 2.5 {
		t.Errorf("scale = %v, want 2.5", p.Scale)
	}
	if p.Seed == nil || *p.Seed != 42 {
		t.Errorf("seed = %v, want 42", p.Seed)
	}
	if p.TimeoutMs != nil || p.Restarts != nil {
		t.Error("unset fields must stay nil")
	}
}
