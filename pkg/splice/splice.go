// Package splice overwrites fixed line ranges of a text file held in memory.
//
// Lines keep their own terminators, so everything outside the replaced
// ranges is written back byte-for-byte. Replacement lines always end with a
// newline.
package splice

import (
	"bytes"
	"sort"
	"strings"

	"github.com/fanimeengine/prepenv/pkg/errors"
)

// Marker prefixes recognised in marker mode
const (
	MarkerBegin = "prepenv:begin"
	MarkerEnd   = "prepenv:end"
)

// Edit replaces the zero-based half-open line range [Start, End) with Lines.
// When Marker is set the range is found by ResolveMarkers instead.
type Edit struct {
	Start  int
	End    int
	Lines  []string
	Marker string
}

// Replace overwrites the single line at index.
func Replace(index int, line string) Edit {
	return Edit{Start: index, End: index + 1, Lines: []string{line}}
}

// ReplaceRange overwrites lines start..end-1.
func ReplaceRange(start, end int, lines ...string) Edit {
	return Edit{Start: start, End: end, Lines: lines}
}

// MarkerEdit replaces everything strictly between the "prepenv:begin name"
// and "prepenv:end name" lines.
func MarkerEdit(name string, lines ...string) Edit {
	return Edit{Marker: name, Lines: lines}
}

// SplitLines splits data after every '\n'. The last line may have no
// terminator. Empty input yields no lines.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := make([]string, 0, bytes.Count(data, []byte{'\n'})+1)
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, string(data))
			break
		}
		lines = append(lines, string(data[:i+1]))
		data = data[i+1:]
	}
	return lines
}

// Join concatenates lines back into file content.
func Join(lines []string) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
	}
	return buf.Bytes()
}

// Apply returns a copy of lines with every edit applied. lines is never
// modified. Edits may be given in any order but must not overlap.
func Apply(lines []string, edits ...Edit) ([]string, error) {
	resolved, err := ResolveMarkers(lines, edits)
	if err != nil {
		return nil, err
	}
	if err := validate(len(lines), resolved); err != nil {
		return nil, err
	}

	// Highest start first so earlier indices stay valid.
	sort.SliceStable(resolved, func(i, j int) bool { return resolved[i].Start > resolved[j].Start })

	out := append([]string(nil), lines...)
	for _, e := range resolved {
		replacement := make([]string, len(e.Lines))
		for i, line := range e.Lines {
			replacement[i] = terminate(line)
		}
		tail := append([]string(nil), out[e.End:]...)
		out = append(append(out[:e.Start], replacement...), tail...)
	}
	return out, nil
}

// ResolveMarkers converts marker edits into index edits. Index edits pass
// through unchanged.
func ResolveMarkers(lines []string, edits []Edit) ([]Edit, error) {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if e.Marker == "" {
			out = append(out, e)
			continue
		}

		begin := findMarker(lines, 0, MarkerBegin, e.Marker)
		if begin < 0 {
			return nil, errors.Newf(errors.ErrMarkerNotFound, "no %q line for %q", MarkerBegin, e.Marker).
				WithDetail("marker", e.Marker)
		}
		end := findMarker(lines, begin+1, MarkerEnd, e.Marker)
		if end < 0 {
			return nil, errors.Newf(errors.ErrMarkerNotFound, "no %q line after line %d for %q", MarkerEnd, begin, e.Marker).
				WithDetail("marker", e.Marker)
		}
		out = append(out, Edit{Start: begin + 1, End: end, Lines: e.Lines})
	}
	return out, nil
}

func findMarker(lines []string, from int, kind, name string) int {
	for i := from; i < len(lines); i++ {
		idx := strings.Index(lines[i], kind+" ")
		if idx < 0 {
			continue
		}
		fields := strings.Fields(lines[i][idx+len(kind):])
		if len(fields) > 0 && fields[0] == name {
			return i
		}
	}
	return -1
}

func validate(lineCount int, edits []Edit) error {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start {
			return errors.Newf(errors.ErrLineRange, "invalid line range [%d, %d)", e.Start, e.End)
		}
		if e.End > lineCount {
			return errors.Newf(errors.ErrLineRange, "line range [%d, %d) exceeds template of %d lines", e.Start, e.End, lineCount).
				WithDetail("lines", lineCount)
		}
		if i > 0 && sorted[i-1].End > e.Start {
			return errors.Newf(errors.ErrLineRange, "line ranges [%d, %d) and [%d, %d) overlap",
				sorted[i-1].Start, sorted[i-1].End, e.Start, e.End)
		}
	}
	return nil
}

func terminate(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}
