package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	dotpath "github.com/goliatone/go-dotpath"
	"github.com/goliatone/go-dotpath/internal/codec"
	"github.com/goliatone/go-dotpath/layering"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const outputMergePatch = "merge-patch"

// source is a document loaded from a file or stdin together with an
// untouched copy used for diffs and patches.
type source struct {
	doc    *dotpath.Document
	format codec.Format
	path   string
	before any
}

func openDocument(cfg config, stdin io.Reader, opts ...dotpath.Option) (*source, error) {
	var (
		data []byte
		err  error
	)
	if cfg.File == "" || cfg.File == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(cfg.File)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", displayName(cfg.File), err)
	}

	format := codec.FormatFromPath(cfg.File)
	if cfg.Format != "" {
		if format, err = codec.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}

	value, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayName(cfg.File), err)
	}
	return &source{
		doc:    dotpath.New(value, opts...),
		format: format,
		path:   cfg.File,
		before: layering.Clone(value),
	}, nil
}

// render encodes value for output, which is a codec format name, the merge
// patch mode or empty for the source format.
func (s *source) render(value any, output string) ([]byte, error) {
	switch output {
	case "":
		return codec.Encode(value, s.format)
	case outputMergePatch:
		patch, err := mergePatch(s.before, s.doc.Value())
		if err != nil {
			return nil, err
		}
		return append(patch, '\n'), nil
	default:
		format, err := codec.ParseFormat(output)
		if err != nil {
			return nil, err
		}
		return codec.Encode(value, format)
	}
}

// writeBack replaces the source file with the current document.
func (s *source) writeBack() error {
	if s.path == "" || s.path == "-" {
		return fmt.Errorf("--in-place needs --file")
	}
	out, err := codec.Encode(s.doc.Value(), s.format)
	if err != nil {
		return err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, info.Mode().Perm())
}

// diff renders a line diff between the original and the current document.
func (s *source) diff() (string, error) {
	before, err := codec.Encode(s.before, s.format)
	if err != nil {
		return "", err
	}
	after, err := codec.Encode(s.doc.Value(), s.format)
	if err != nil {
		return "", err
	}
	return lineDiff(string(before), string(after)), nil
}

// mergePatch returns the RFC 7386 merge patch turning before into after.
func mergePatch(before, after any) ([]byte, error) {
	original, err := json.Marshal(before)
	if err != nil {
		return nil, err
	}
	modified, err := json.Marshal(after)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return patch, nil
}

func lineDiff(before, after string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := color.New(color.FgGreen).SprintFunc()
	removed := color.New(color.FgRed).SprintFunc()

	var buf bytes.Buffer
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", added
		case diffpatch.DiffDelete:
			prefix, paint = "- ", removed
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(paint(prefix + strings.TrimSuffix(line, "\n")))
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
