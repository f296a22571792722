package cli

import (
	"errors"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
)

type errorKindT int

const (
	kindUnknown errorKindT = iota
	kindParse
	kindIO
	kindInvalidArgument
	kindBudgetTooSmall
)

// errorKind classifies err into the small set of kinds ExitCode maps to
// concrete process exit codes.
func errorKind(err error) errorKindT {
	var parseErr *cerrors.ParseError
	if errors.As(err, &parseErr) {
		return kindParse
	}
	var ioErr *cerrors.IoError
	if errors.As(err, &ioErr) {
		return kindIO
	}
	var invalidArg *cerrors.InvalidArgument
	if errors.As(err, &invalidArg) {
		return kindInvalidArgument
	}
	var budgetErr *cerrors.BudgetTooSmallError
	if errors.As(err, &budgetErr) {
		return kindBudgetTooSmall
	}
	return kindUnknown
}
