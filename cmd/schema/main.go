package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

type target struct {
	file        string
	title       string
	description string
	v           any
}

var targets = []target{
	{"match.schema.json", "Fencing match", "Validates assets/match.yaml", new(config.MatchConfig)},
	{"actions.schema.json", "Fencing action catalog", "Validates assets/actions.yaml", new(config.ActionsConfig)},
	{"doctrine.schema.json", "Fencing doctrine", "Validates assets/doctrines/*.yaml", new(config.DoctrineConfig)},
}

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas to")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}
	for _, t := range targets {
		if err := writeSchema(filepath.Join(outDir, t.file), buildSchema(t)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", t.file, err)
			os.Exit(1)
		}
	}
}

func buildSchema(t target) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(t.v)
	schema.Title = t.title
	schema.Description = t.description
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
