// Package unprotect removes worksheet protection from .xlsx and .xlsm
// packages while preserving every other entry of the package.
package unprotect

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/models"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/protection"
)

// ConfirmFunc is asked whether to proceed after inspection. Returning
// false cancels the run before any worksheet part is modified.
type ConfirmFunc func(inspections []models.Inspection) bool

// Options configures a run.
type Options struct {
	// InspectFirst inspects every worksheet part before stripping.
	InspectFirst bool
	// Confirm is consulted after inspection. If nil, the run proceeds.
	Confirm ConfirmFunc
	// OutputPath overrides the default "<base>_unprotected<ext>" sibling.
	OutputPath string
	// Stripper performs detection and removal. If nil, the textual
	// protection.RegexStripper is used.
	Stripper protection.Stripper
	// Logger receives progress. If nil, nothing is logged.
	Logger *log.Logger
}

// DefaultOptions returns options that strip without inspection.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) stripper() protection.Stripper {
	if o.Stripper != nil {
		return o.Stripper
	}
	return protection.RegexStripper{}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

func (o Options) confirm(inspections []models.Inspection) bool {
	if o.Confirm == nil {
		return true
	}
	return o.Confirm(inspections)
}
