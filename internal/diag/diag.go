// Package diag implements the compiler's non-fatal diagnostic model: every
// semantic error is recorded with a source position and kept collecting,
// rather than aborting on the first one (§7 of the error-handling design).
package diag

import (
	"fmt"
	"sort"

	"github.com/Disha23112004/mini-compiler/internal/token"
)

// Kind classifies a diagnostic. The first fifteen match the analyzer's
// error-handling design; MissingMain and InvalidMain are this compiler's
// own supplement for validating the program's entry point.
type Kind int

const (
	DuplicateStruct Kind = iota
	DuplicateFunction
	DuplicateInScope
	UnknownStruct
	UnknownFunction
	UnknownName
	UnknownField
	ArityMismatch
	TypeMismatch
	InvalidCondition
	InvalidReturn
	MissingReturn
	InvalidDelete
	InvalidPrintOperand
	InvalidReadTarget
	MissingMain
	InvalidMain
)

var kindNames = map[Kind]string{
	DuplicateStruct:      "DuplicateStruct",
	DuplicateFunction:    "DuplicateFunction",
	DuplicateInScope:     "DuplicateInScope",
	UnknownStruct:        "UnknownStruct",
	UnknownFunction:      "UnknownFunction",
	UnknownName:          "UnknownName",
	UnknownField:         "UnknownField",
	ArityMismatch:        "ArityMismatch",
	TypeMismatch:         "TypeMismatch",
	InvalidCondition:     "InvalidCondition",
	InvalidReturn:        "InvalidReturn",
	MissingReturn:        "MissingReturn",
	InvalidDelete:        "InvalidDelete",
	InvalidPrintOperand:  "InvalidPrintOperand",
	InvalidReadTarget:    "InvalidReadTarget",
	MissingMain:          "MissingMain",
	InvalidMain:          "InvalidMain",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Diagnostic is one recorded error, tied to the source position it was
// found at.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Position
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Message)
}

// Collector accumulates diagnostics during analysis without aborting.
// Analysis proceeds after every Add, per the non-fatal policy: codegen is
// skipped only once, at phase end, if the collector is non-empty.
type Collector struct {
	diags []Diagnostic
}

func (c *Collector) Add(kind Kind, pos token.Position, format string, args ...interface{}) {
	c.diags = append(c.diags, Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (c *Collector) HasErrors() bool { return len(c.diags) > 0 }

// Diagnostics returns every recorded diagnostic in source order (by line,
// then column). Analysis records them pass by pass, so they are sorted
// here; diagnostics at the same position keep the order they were added.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Pos.Col < out[j].Pos.Col
	})
	return out
}
