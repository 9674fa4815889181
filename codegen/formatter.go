package codegen

import (
	"fmt"
	"strings"

	arch "github.com/pattyshack/tilegen/architecture"
)

// Formatter renders operations as assembler source.
type Formatter struct {
	// Defaults to a tab.
	Indent string

	// Append each instruction's cost as a comment.
	ShowCost bool
}

func (formatter Formatter) Line(op arch.Operation) string {
	switch op.Kind {
	case arch.LabelOp, arch.BlankLineOp:
		return op.String()
	case arch.NoOp:
		panic("should never happen")
	}

	indent := formatter.Indent
	if indent == "" {
		indent = "\t"
	}

	line := indent + op.String()
	if formatter.ShowCost && op.Kind != arch.AlignOp {
		line += fmt.Sprintf(" ; %d", op.Cost())
	}
	return line
}

// Format skips no-ops.
func (formatter Formatter) Format(ops []arch.Operation) string {
	builder := strings.Builder{}
	for _, op := range ops {
		if op.Kind == arch.NoOp {
			continue
		}
		builder.WriteString(formatter.Line(op))
		builder.WriteString("\n")
	}
	return builder.String()
}
