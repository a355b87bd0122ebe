package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSchemas(t *testing.T) {
	dir := t.TempDir()
	for _, tg := range targets {
		if err := writeSchema(filepath.Join(dir, tg.file), buildSchema(tg)); err != nil {
			t.Fatalf("%s: %v", tg.file, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "match.schema.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"title": "Fencing match"`, `"max_tick"`, `"turn_timeout_ms"`, `"lose"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("match schema lacks %s", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "match.schema.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}

	data, err = os.ReadFile(filepath.Join(dir, "doctrine.schema.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "expr-lang boolean expression") {
		t.Fatalf("doctrine schema lost the rule description")
	}
}
