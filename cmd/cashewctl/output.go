package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// printer renders either aligned columns or indented JSON
type printer struct {
	out  io.Writer
	json bool
}

func newPrinter(e *env) *printer {
	return &printer{out: os.Stdout, json: e.json}
}

// table prints rows under header; in JSON mode it prints raw instead
func (p *printer) table(raw any, header []string, rows [][]string) error {
	if p.json {
		return p.raw(raw)
	}
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (p *printer) raw(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// line prints a human message, or v as JSON in JSON mode
func (p *printer) line(v any, format string, args ...any) error {
	if p.json {
		return p.raw(v)
	}
	_, err := fmt.Fprintf(p.out, format+"\n", args...)
	return err
}
