package interpreter

import (
	"errors"
	"strings"

	"github.com/Zirconova/azurite/pkg/driver"
)

type RuntimeDiagnosticNote struct {
	Message  string
	Location driver.Location
}

type RuntimeDiagnostic struct {
	Message  string
	Location driver.Location
	Notes    []RuntimeDiagnosticNote
}

// maxCallNotes bounds the "called from here" notes attached to a diagnostic.
const maxCallNotes = 8

// BuildRuntimeDiagnostic locates err in the source using the node and call
// stack recorded when it was raised.
func (i *Interpreter) BuildRuntimeDiagnostic(err error) RuntimeDiagnostic {
	var diag RuntimeDiagnostic
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		if err != nil {
			diag.Message = err.Error()
		}
		return diag
	}
	diag.Message = rtErr.Message
	diag.Location = driver.LocationOf(i.path, rtErr.Node)
	for idx := len(rtErr.Calls) - 1; idx >= 0 && len(diag.Notes) < maxCallNotes; idx-- {
		loc := driver.LocationOf(i.path, rtErr.Calls[idx])
		if loc == (driver.Location{}) || loc == diag.Location {
			continue
		}
		diag.Notes = append(diag.Notes, RuntimeDiagnosticNote{Message: "called from here", Location: loc})
	}
	return diag
}

// DescribeRuntimeDiagnostic formats a runtime diagnostic for CLI output,
// one note per line after the message.
func DescribeRuntimeDiagnostic(diag RuntimeDiagnostic) string {
	var b strings.Builder
	b.WriteString(driver.Describe("runtime", diag.Location, diag.Message))
	for _, note := range diag.Notes {
		b.WriteString("\n")
		b.WriteString(driver.Describe("note", note.Location, note.Message))
	}
	return b.String()
}
