package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcgardent/fencing-codingame-private/internal/autodoc"
	"github.com/marcgardent/fencing-codingame-private/internal/combat"
	"github.com/marcgardent/fencing-codingame-private/internal/config"
)

func main() {
	var cfgDir, format, out string
	flag.StringVar(&cfgDir, "config", "assets", "config dir; actions.yaml is used when present")
	flag.StringVar(&format, "format", autodoc.FormatHTMLList, "html-list, html-table or markdown")
	flag.StringVar(&out, "out", "", "output file (default stdout)")
	flag.Parse()

	if err := run(cfgDir, format, out); err != nil {
		fmt.Fprintf(os.Stderr, "autodoc: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgDir, format, out string) error {
	_, ac, _, err := config.LoadAll(cfgDir)
	if err != nil {
		return err
	}
	cat, err := combat.NewCatalog(ac)
	if err != nil {
		return err
	}
	if out == "" {
		return autodoc.Render(os.Stdout, cat, format)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := autodoc.Render(f, cat, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
