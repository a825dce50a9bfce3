// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// ValidationCode classifies an intake validation failure.
// Per prd001-derivation R5.1.
type ValidationCode string

const (
	CodeDanglingTarget     ValidationCode = "dangling_target"
	CodeDuplicateID        ValidationCode = "duplicate_id"
	CodeUnknownSubtype     ValidationCode = "unknown_subtype"
	CodeUnknownRebuttal    ValidationCode = "unknown_rebuttal_kind"
	CodeDisallowedRebuttal ValidationCode = "disallowed_rebuttal_kind"
	CodeIrrebuttable       ValidationCode = "rebuttal_on_irrebuttable"
	CodeDecisiveRebutted   ValidationCode = "rebuttal_on_decisive"
	CodeScopeNarrowing     ValidationCode = "scope_narrowing_invariant"
	CodeMissingMinimality  ValidationCode = "missing_minimality"
	CodeMissingReference   ValidationCode = "missing_reference"
	CodeUnknownReference   ValidationCode = "unknown_reference"
	CodeBadJudgement       ValidationCode = "bad_judgement"
	CodeMissingArgument    ValidationCode = "missing_argument"
	CodeBadObligation      ValidationCode = "bad_obligation"
)

// ValidationError reports malformed run input. It is fatal: the run cannot
// proceed until the input is corrected upstream. Every instance carries the
// id(s) of the offending record(s) so no failure is dropped without a
// traceable cause. Per prd001-derivation R5.1-R5.3.
type ValidationError struct {
	// Code classifies the failure.
	Code ValidationCode

	// RecordIDs names the offending candidate/challenge/judgement records.
	RecordIDs []string

	// Detail is a human-readable explanation.
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s) for %s: %s",
		e.Code, strings.Join(e.RecordIDs, ", "), e.Detail)
}

// Validationf builds a ValidationError with a formatted detail message.
func Validationf(code ValidationCode, ids []string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:      code,
		RecordIDs: ids,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// AmbiguousSelectionError reports that more than one survivor remained, the
// merge attempt failed or was absent, and no tie-break criterion
// discriminated. The engine never guesses a winner; this surfaces the need
// for explicit external judgement. Per prd003-selection R5.1.
type AmbiguousSelectionError struct {
	// CandidateIDs lists the indistinguishable survivors.
	CandidateIDs []string
}

func (e *AmbiguousSelectionError) Error() string {
	return fmt.Sprintf("selection is ambiguous between %s: no criterion discriminates and no evaluator judgement was supplied",
		strings.Join(e.CandidateIDs, ", "))
}
