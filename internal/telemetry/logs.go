package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

const tailChunkSize = 4096

// Logs returns the last limit lines of the first log file that exists.
// With no log file available it returns limit placeholder lines so the
// dashboard always has something to render.
func (a *Aggregator) Logs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable("logs", err)
	}

	path := firstExisting(a.cfg.LogPaths)
	if path == "" {
		return placeholderLines(limit), nil
	}

	lines, err := tailFile(path, limit)
	if err != nil {
		return nil, unavailable("reading "+path, err)
	}
	a.cfg.Redactor.RedactLines(lines)
	return lines, nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func placeholderLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Log line %d: Sample log entry", i+1)
	}
	return lines
}

// tailFile reads backwards from the end of path until it holds more than
// n line breaks, then returns the last n lines.
func tailFile(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	var (
		buf    []byte
		offset = info.Size()
		chunk  = make([]byte, tailChunkSize)
	)
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		size := int64(tailChunkSize)
		if offset < size {
			size = offset
		}
		offset -= size
		if _, err := f.ReadAt(chunk[:size], offset); err != nil && err != io.EOF {
			return nil, err
		}
		buf = append(append(make([]byte, 0, int(size)+len(buf)), chunk[:size]...), buf...)
	}

	text := strings.TrimSuffix(string(buf), "\n")
	if text == "" {
		return []string{}, nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}
