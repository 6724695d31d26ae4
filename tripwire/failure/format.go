package failure

import (
	"fmt"
	"io"
)

// Verbose formatting layout:
//
//	%s, %v   → message only
//	%+v      → message, then details and the filtered stack:
//	             actual=<actual> show_diff=<bool>
//	             facts: key1=val1 key2=val2
//	             stack:
//	               funcA file.go:123

func formatConcise(w io.Writer, e error) {
	_, _ = io.WriteString(w, e.Error())
}

func formatVerbose(w io.Writer, msg string, details Details, frames []frameLike) {
	_, _ = fmt.Fprintf(w, "msg=%q", msg)
	_, _ = fmt.Fprintf(w, "\nactual=%v show_diff=%t", details.Actual, details.ShowDiff)

	if len(details.Facts) > 0 {
		_, _ = io.WriteString(w, "\nfacts:")
		for _, f := range details.Facts {
			if f.Key != "" {
				_, _ = fmt.Fprintf(w, " %s=%v", f.Key, f.Value)
			}
		}
	}

	if len(frames) > 0 {
		_, _ = io.WriteString(w, "\nstack:")
		for _, fr := range frames {
			_, _ = fmt.Fprintf(w, "\n  %s %s:%d", fr.Function, fr.File, fr.Line)
		}
	}
}

type frameLike struct {
	Function string
	File     string
	Line     int
}

// Format implements fmt.Formatter for Failure.
func (f *Failure) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && f != nil {
			formatVerbose(s, f.Message, f.Details, toFrameLikes(f))
			return
		}

		formatConcise(s, f)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", f.Error())
	default:
		formatConcise(s, f)
	}
}

// Format implements fmt.Formatter for Fatal.
func (f *Fatal) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && f != nil {
			formatVerbose(s, f.Message, f.Details, toFatalFrameLikes(f))
			return
		}

		formatConcise(s, f)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", f.Error())
	default:
		formatConcise(s, f)
	}
}

func toFrameLikes(f *Failure) []frameLike {
	out := make([]frameLike, 0, len(f.Frames))
	for _, fr := range f.Frames {
		out = append(out, frameLike{Function: fr.Function, File: fr.File, Line: fr.Line})
	}

	return out
}

func toFatalFrameLikes(f *Fatal) []frameLike {
	out := make([]frameLike, 0, len(f.Frames))
	for _, fr := range f.Frames {
		out = append(out, frameLike{Function: fr.Function, File: fr.File, Line: fr.Line})
	}

	return out
}
