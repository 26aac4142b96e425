package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/production"
)

// ErrorKind classifies a compile failure.
type ErrorKind string

const (
	// KindUnknownCategory means a category string could not be parsed.
	KindUnknownCategory ErrorKind = "UnknownCategory"

	// KindUnknownDrsSignature means no lexical template exists for a leaf.
	KindUnknownDrsSignature ErrorKind = "UnknownDrsSignature"

	// KindUnknownRule means no combinator joins the children of a node.
	KindUnknownRule ErrorKind = "UnknownRule"

	// KindArityMismatch means the operands of a rule have incompatible shapes.
	KindArityMismatch ErrorKind = "ArityMismatch"

	// KindUnresolvedProduction means the derivation did not reduce to a DRS.
	KindUnresolvedProduction ErrorKind = "UnresolvedProduction"

	// KindImpureProduction means the final DRS is not proper and pure.
	KindImpureProduction ErrorKind = "ImpureProduction"

	// KindMalformedParseTree means the derivation text or tree is malformed.
	KindMalformedParseTree ErrorKind = "MalformedParseTree"
)

func (k ErrorKind) String() string { return string(k) }

// Code returns the stable error code reported by the command line.
func (k ErrorKind) Code() string {
	switch k {
	case KindUnknownCategory:
		return "E101"
	case KindUnknownDrsSignature:
		return "E102"
	case KindUnknownRule:
		return "E103"
	case KindArityMismatch:
		return "E104"
	case KindUnresolvedProduction:
		return "E105"
	case KindImpureProduction:
		return "E106"
	case KindMalformedParseTree:
		return "E107"
	}
	return "E100"
}

// CompileError reports why a sentence failed to compile. Category and Word
// locate the offending node; Word is empty for internal nodes.
type CompileError struct {
	Kind     ErrorKind
	Category string
	Word     string
	Message  string
	Err      error
}

func (e *CompileError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Word != "":
		return fmt.Sprintf("%s: %s (category=%s, word=%q)", e.Kind, msg, e.Category, e.Word)
	case e.Category != "":
		return fmt.Sprintf("%s: %s (category=%s)", e.Kind, msg, e.Category)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *CompileError) Unwrap() error { return e.Err }

// KindOf returns the kind of a compile failure, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// fromProduction classifies an error raised by the production algebra.
func fromProduction(err error, cat ccg.Category) *CompileError {
	kind := KindArityMismatch
	if errors.Is(err, production.ErrUnresolved) {
		kind = KindUnresolvedProduction
	}
	return &CompileError{Kind: kind, Category: cat.String(), Err: err}
}

// fromParse classifies an error raised while reading a derivation.
func fromParse(err error) *CompileError {
	kind := KindMalformedParseTree
	if errors.Is(err, ccg.ErrUnknownCategory) {
		kind = KindUnknownCategory
	}
	return &CompileError{Kind: kind, Err: err}
}
