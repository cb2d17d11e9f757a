// Package qfile loads and saves dense QUBO matrices for the qubocraft
// command-line tool. It accepts a JSON document or whitespace/comma
// delimited text, and keeps a JSON sidecar cache next to text sources
// so large matrices are only parsed once.
package qfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rbscholtus/qubocraft/internal/tabu"
	"github.com/rbscholtus/qubocraft/internal/tabuutil"
)

// Document is a QUBO problem as stored on disk: the dense coefficient
// matrix plus the fixed-point scale the engine should use. A zero
// Scale means "use the engine default".
type Document struct {
	Scale  float64     `json:"scale,omitempty"`
	Matrix [][]float64 `json:"matrix"`
}

// Meta describes where a Document came from.
type Meta struct {
	// Name is the source filename without directory or extension.
	Name string
	// Source is the path the caller asked for.
	Source string
	// Cached reports whether the matrix was read from a JSON sidecar
	// cache rather than parsed from the text source.
	Cached bool
}

// Load reads a QUBO matrix from path. A ".json" file is decoded
// directly as a Document. Any other extension is parsed as dense text
// (one row per line, entries separated by whitespace or commas); a
// ".json" sidecar cache is written next to the source and reused on
// later loads while it is not older than the source.
func Load(path string) (Document, Meta, error) {
	meta := Meta{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Source: path,
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := loadJSON(path)
		return doc, meta, err
	}

	// Use the sidecar cache if it exists and is not older than the
	// source, or if the source itself is gone but the cache survives.
	jsonPath := path + ".json"
	jsonInfo, jsonErr := os.Stat(jsonPath)
	srcInfo, srcErr := os.Stat(path)
	if jsonErr == nil && (os.IsNotExist(srcErr) || (srcErr == nil && !jsonInfo.ModTime().Before(srcInfo.ModTime()))) {
		doc, err := loadJSON(jsonPath)
		meta.Cached = true
		return doc, meta, err
	}

	doc, err := loadText(path)
	if err != nil {
		return Document{}, meta, err
	}
	if err := saveJSON(jsonPath, doc); err != nil {
		return Document{}, meta, err
	}
	return doc, meta, nil
}

// loadJSON decodes a Document from a JSON file.
func loadJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer tabuutil.CloseFile(f)

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

// loadText parses a dense matrix from text, one row per line. Blank
// lines and lines starting with '#' are skipped.
func loadText(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer tabuutil.CloseFile(f)

	var matrix [][]float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]float64, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Document{}, fmt.Errorf("%s:%d: invalid entry %q: %w", path, lineNo, field, err)
			}
			row = append(row, v)
		}
		matrix = append(matrix, row)
	}
	if err := scanner.Err(); err != nil {
		return Document{}, err
	}

	return Document{Matrix: matrix}, nil
}

// saveJSON writes a Document as an indented JSON sidecar cache.
func saveJSON(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer tabuutil.CloseFile(f)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// resultDoc is the on-disk form of a search result.
type resultDoc struct {
	Assignment []uint8 `json:"assignment"`
	Energy     float64 `json:"energy"`
	Restarts   int     `json:"restarts"`
}

// SaveResult writes a search result as a JSON document.
func SaveResult(path string, r tabu.SearchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer tabuutil.CloseFile(f)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(resultDoc{
		Assignment: r.BestAssignment,
		Energy:     r.BestEnergy,
		Restarts:   r.Restarts,
	})
}
