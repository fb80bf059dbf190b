package diagnostic

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rowmap-generator/internal/common"
)

// Severity orders diagnostics from informational notes to errors that stop generation.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity name written to mapping files.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Level is the log level a diagnostic of this severity is reported at.
func (s Severity) Level() zapcore.Level {
	switch s {
	case SeverityError:
		return zapcore.ErrorLevel
	case SeverityWarning:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Diagnostic is one finding about a target type or one of its properties.
type Diagnostic struct {
	Severity Severity
	// Code is a stable identifier, e.g. "duplicate_key".
	Code    string
	Message string
	// Type is the fully-qualified target type, if any.
	Type string
	// Field is the property selector, if any.
	Field string
}

// Error renders the diagnostic as "[type] field: [code] message".
func (d Diagnostic) Error() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	switch {
	case d.Type != "" && d.Field != "":
		return fmt.Sprintf("[%s] %s: %s", d.Type, d.Field, msg)
	case d.Type != "":
		return fmt.Sprintf("[%s]: %s", d.Type, msg)
	case d.Field != "":
		return d.Field + ": " + msg
	default:
		return msg
	}
}

// LogFields returns the structured context of the diagnostic.
func (d Diagnostic) LogFields() []zap.Field {
	fields := []zap.Field{zap.String("code", d.Code)}
	if d.Type != "" {
		fields = append(fields, zap.String("type", d.Type))
	}

	if d.Field != "" {
		fields = append(fields, zap.String("field", d.Field))
	}

	return fields
}

// Diagnostics collects findings by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add records a diagnostic of the given severity.
func (d *Diagnostics) Add(sev Severity, code, message, typeID, field string) {
	diag := Diagnostic{Severity: sev, Code: code, Message: message, Type: typeID, Field: field}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, typeID, field string) {
	d.Add(SeverityError, code, message, typeID, field)
}

func (d *Diagnostics) AddWarning(code, message, typeID, field string) {
	d.Add(SeverityWarning, code, message, typeID, field)
}

func (d *Diagnostics) AddInfo(code, message, typeID, field string) {
	d.Add(SeverityInfo, code, message, typeID, field)
}

// HasErrors reports whether generation has to stop.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other, keeping its order within each severity.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, warnings and infos, in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err joins the error diagnostics, or returns nil when there are none.
// Each joined error is a Diagnostic and can be extracted with errors.As.
func (d *Diagnostics) Err() error {
	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// Log writes every diagnostic to logger at the level of its severity.
func (d *Diagnostics) Log(logger *zap.Logger) {
	for _, diag := range d.All() {
		if ce := logger.Check(diag.Severity.Level(), diag.Message); ce != nil {
			ce.Write(diag.LogFields()...)
		}
	}
}
