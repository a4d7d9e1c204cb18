package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/syssam/pandagraph/query"
)

// Output formats.
const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatMsgpack = "msgpack"
	formatTable   = "table"
)

// encoder writes result rows in one output format.
type encoder interface {
	Encode(row query.Result) error
	// Close flushes buffered output. The encoder must not be used after.
	Close() error
}

// newEncoder returns the encoder for format. columns fixes the column
// order of the table format.
func newEncoder(format string, w io.Writer, columns []string) (encoder, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &jsonEncoder{enc: enc}, nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlEncoder{enc: enc}, nil
	case formatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return &msgpackEncoder{enc: enc}, nil
	case formatTable:
		return newTableEncoder(w, columns), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json, yaml, msgpack or table)", format)
	}
}

type jsonEncoder struct{ enc *json.Encoder }

func (e *jsonEncoder) Encode(row query.Result) error { return e.enc.Encode(row) }
func (e *jsonEncoder) Close() error                  { return nil }

type yamlEncoder struct{ enc *yaml.Encoder }

func (e *yamlEncoder) Encode(row query.Result) error { return e.enc.Encode(row) }
func (e *yamlEncoder) Close() error                  { return e.enc.Close() }

type msgpackEncoder struct{ enc *msgpack.Encoder }

func (e *msgpackEncoder) Encode(row query.Result) error { return e.enc.Encode(row) }
func (e *msgpackEncoder) Close() error                  { return nil }

// tableEncoder renders one row per line under a title-cased header. Edge
// values are rendered as compact JSON.
type tableEncoder struct {
	tw      *tabwriter.Writer
	columns []string
	header  bool
}

func newTableEncoder(w io.Writer, columns []string) *tableEncoder {
	return &tableEncoder{
		tw:      tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		columns: columns,
	}
}

func (e *tableEncoder) Encode(row query.Result) error {
	if !e.header {
		e.header = true
		if err := e.writeLine(headers(e.columns)); err != nil {
			return err
		}
	}
	cells := make([]string, len(e.columns))
	for i, col := range e.columns {
		cell, err := formatCell(row[col])
		if err != nil {
			return fmt.Errorf("column %s: %w", col, err)
		}
		cells[i] = cell
	}
	return e.writeLine(cells)
}

func (e *tableEncoder) writeLine(cells []string) error {
	_, err := fmt.Fprintln(e.tw, strings.Join(cells, "\t"))
	return err
}

func (e *tableEncoder) Close() error {
	return e.tw.Flush()
}

// headers title-cases column names: "match_status" becomes "Match Status".
func headers(columns []string) []string {
	caser := cases.Title(language.English)
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = caser.String(strings.ReplaceAll(col, "_", " "))
	}
	return out
}

func formatCell(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "-", nil
	case string:
		return v, nil
	case []query.Result:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return fmt.Sprint(v), nil
	}
}
