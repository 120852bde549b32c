package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/ldgraph"
)

type ingestFlags struct {
	link    bool
	node    string
	compact bool
}

// decodeFile returns the documents held by path: one for JSON, every
// document of the stream for YAML.
func decodeFile(path string, opt ldgraph.Options) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ldgraph.DecodeYAML(data, opt)
	default:
		doc, err := ldgraph.DecodeJSON(data, opt)
		if err != nil {
			return nil, err
		}
		return []any{doc}, nil
	}
}

func runCheck(cmd *cobra.Command, opt ldgraph.Options, files []string) error {
	out := cmd.OutOrStdout()
	p := ldgraph.NewParser(ldgraph.NewCorpus(opt))
	failed := false
	for _, f := range files {
		docs, err := decodeFile(f, opt)
		if err != nil {
			printFileError(out, f, err)
			failed = true
			continue
		}
		before := len(p.Diagnostics())
		for _, doc := range docs {
			p.Parse(doc)
		}
		printDiagnostics(out, f, p.Diagnostics()[before:])
	}
	if failed || p.Err() != nil {
		fmt.Fprintf(out, "%s %d diagnostics\n", color.RedString("FAIL"), len(p.Diagnostics()))
		return errReported
	}
	fmt.Fprintf(out, "%s %d nodes in %d files\n", color.GreenString("ok"), p.StagedLen(), len(files))
	return nil
}

func runIngest(cmd *cobra.Command, opt ldgraph.Options, fl ingestFlags, files []string) error {
	out := cmd.OutOrStdout()
	c := ldgraph.NewCorpus(opt)
	for _, f := range files {
		if err := ingestFile(c, f, opt); err != nil {
			if ds, ok := ldgraph.AsDiagnostics(err); ok {
				printDiagnostics(cmd.ErrOrStderr(), f, ds)
			} else {
				printFileError(cmd.ErrOrStderr(), f, err)
			}
			return errReported
		}
	}
	if fl.link {
		if _, err := c.Link(); err != nil {
			return err
		}
	}

	g := c.Graph()
	var v any
	if fl.node != "" {
		n := g.Node(fl.node)
		if n == nil {
			return fmt.Errorf("no node with @id %q", fl.node)
		}
		v = n
	} else {
		nodes := []*ldgraph.View{}
		for n := range g.Nodes() {
			nodes = append(nodes, n)
		}
		v = nodes
	}
	return writeJSON(out, v, !fl.compact)
}

func ingestFile(c *ldgraph.Corpus, path string, opt ldgraph.Options) error {
	docs, err := decodeFile(path, opt)
	if err != nil {
		return err
	}
	p := ldgraph.NewParser(c)
	for _, doc := range docs {
		p.Parse(doc)
	}
	if err := p.Err(); err != nil {
		return err
	}
	_, err = p.TransferOnSuccess()
	return err
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printDiagnostics(w io.Writer, file string, ds ldgraph.Diagnostics) {
	for _, d := range ds {
		loc := file
		if d.Path != "" {
			loc += " " + color.CyanString(d.Path)
		}
		fmt.Fprintf(w, "%s: %s %s\n", loc, color.YellowString(d.Code), d.Message)
	}
}

func printFileError(w io.Writer, file string, err error) {
	fmt.Fprintf(w, "%s: %s %v\n", file, color.RedString("error"), err)
}
