package repair

import (
	"fmt"

	"github.com/kwhite/capmill/pkg/kernel"
)

// DiagnosticKind classifies a recoverable defect found during repair.
type DiagnosticKind string

const (
	// DiagSkippedFace records a face whose triangulation was absent.
	DiagSkippedFace DiagnosticKind = "skipped-face"
	// DiagDegenerateTriangle records a triangle dropped because vertex
	// merging collapsed it below three distinct indices.
	DiagDegenerateTriangle DiagnosticKind = "degenerate-triangle"
	// DiagUnrepairedBoundary records a boundary that could not be
	// closed into a simple cycle, or edges left open after patching.
	DiagUnrepairedBoundary DiagnosticKind = "unrepaired-boundary"
)

// Diagnostic is a structured record of one recovered defect. The
// pipeline returns diagnostics alongside its (possibly partial)
// output; they never affect control flow.
type Diagnostic struct {
	Kind    DiagnosticKind
	Face    kernel.FaceID // source face for face-scoped kinds, -1 otherwise
	Loop    int           // walk number for boundary-scoped kinds, -1 otherwise
	Message string
}

func (d Diagnostic) String() string {
	switch {
	case d.Face >= 0:
		return fmt.Sprintf("%s: face %d: %s", d.Kind, d.Face, d.Message)
	case d.Loop >= 0:
		return fmt.Sprintf("%s: loop %d: %s", d.Kind, d.Loop, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
}

// Count returns how many diagnostics of the given kind are present.
func Count(diags []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
