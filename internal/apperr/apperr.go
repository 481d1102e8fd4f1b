// Package apperr carries the business-rule error conditions of the exam
// engine. Each condition has a stable code so clients can react to the
// specific case (resume vs. validation message); anything that is not an
// *Error is treated as an infrastructure failure and is retryable.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kotoba-lab/mogi/internal/model"
)

type Code string

const (
	CodeInvalidLevel        Code = "invalid_level"
	CodeInvalidSection      Code = "invalid_section"
	CodeInsufficientPool    Code = "insufficient_content_pool"
	CodeSectionLocked       Code = "section_locked"
	CodeAlreadySubmitted    Code = "already_submitted"
	CodeMissingSection      Code = "missing_section"
	CodeAlreadyCompleted    Code = "already_completed"
	CodeNotOwner            Code = "not_owner"
	CodeNotFound            Code = "not_found"
	CodeAttemptNotCompleted Code = "attempt_not_completed"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is match two *Error values by code alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the business code from err, or "" if err is an
// infrastructure failure.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func InvalidLevel(raw string) *Error {
	return &Error{Code: CodeInvalidLevel, Message: fmt.Sprintf("unknown JLPT level %q", raw)}
}

func InvalidSection(raw string) *Error {
	return &Error{Code: CodeInvalidSection, Message: fmt.Sprintf("unknown section %q", raw)}
}

func InsufficientPool(section model.SectionType, required, available int) *Error {
	return &Error{
		Code: CodeInsufficientPool,
		Message: fmt.Sprintf("section %s has only %d active questions, %d required (short by %d)",
			section, available, required, required-available),
	}
}

func SectionLocked(section model.SectionType) *Error {
	return &Error{Code: CodeSectionLocked, Message: fmt.Sprintf("section %s has been submitted and is locked", section)}
}

func AlreadySubmitted(section model.SectionType) *Error {
	return &Error{Code: CodeAlreadySubmitted, Message: fmt.Sprintf("section %s has already been submitted", section)}
}

func MissingSections(sections []model.SectionType) *Error {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.String()
	}
	return &Error{
		Code:    CodeMissingSection,
		Message: fmt.Sprintf("cannot complete: sections not yet submitted: %s", strings.Join(names, ", ")),
	}
}

func AlreadyCompleted(attemptID uint) *Error {
	return &Error{Code: CodeAlreadyCompleted, Message: fmt.Sprintf("attempt %d is already completed", attemptID)}
}

func NotOwner(attemptID uint) *Error {
	return &Error{Code: CodeNotOwner, Message: fmt.Sprintf("attempt %d not found", attemptID)}
}

func NotFound(what string, id uint) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %d not found", what, id)}
}

func AttemptNotCompleted(attemptID uint) *Error {
	return &Error{Code: CodeAttemptNotCompleted, Message: fmt.Sprintf("attempt %d is still in progress", attemptID)}
}
