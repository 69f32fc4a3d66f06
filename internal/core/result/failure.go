package result

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a business failure.
type Kind string

const (
	KindUnauthorized     Kind = "unauthorized"
	KindInvalidGroupSize Kind = "invalid_group_size"
	KindNotFound         Kind = "not_found"
	KindInvalidGroupSet  Kind = "invalid_group_set"
	KindInvalidRequest   Kind = "invalid_request"
)

// Failure is an expected business outcome: denied access, a bad group size,
// a missing record. It implements error so it can cross into error-only code.
type Failure struct {
	Kind    Kind
	Message string

	// Size, Min and Max are set for KindInvalidGroupSize.
	Size int
	Min  int
	Max  int

	// Fields lists offending request fields for KindInvalidRequest.
	Fields []string
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return f.Message
}

// Is matches another *Failure by Kind, so errors.Is(err, &Failure{Kind: k}) works.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok || f == nil || t == nil {
		return false
	}
	return f.Kind == t.Kind
}

// Unauthorized reports that a teacher may not manage a course.
func Unauthorized(teacherID, courseID string) *Failure {
	return &Failure{
		Kind:    KindUnauthorized,
		Message: fmt.Sprintf("teacher %s is not authorized to manage course %s", teacherID, courseID),
	}
}

// InvalidGroupSize reports a group size outside [min, max].
func InvalidGroupSize(size, min, max int) *Failure {
	return &Failure{
		Kind:    KindInvalidGroupSize,
		Message: fmt.Sprintf("Invalid group size: %d (must be between %d and %d)", size, min, max),
		Size:    size,
		Min:     min,
		Max:     max,
	}
}

// NotFound reports a missing entity.
func NotFound(entity, id string) *Failure {
	return &Failure{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

// InvalidGroupSet reports a group set that breaks the partition invariant.
func InvalidGroupSet(reason string) *Failure {
	return &Failure{
		Kind:    KindInvalidGroupSet,
		Message: fmt.Sprintf("invalid group set: %s", reason),
	}
}

// InvalidRequest reports request fields that failed validation.
func InvalidRequest(fields ...string) *Failure {
	return &Failure{
		Kind:    KindInvalidRequest,
		Message: fmt.Sprintf("invalid request: %s", strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

// IsKind reports whether err is (or wraps) a *Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f.Kind == kind
	}
	return false
}
