package syntax

import "fmt"

// ParseError is the error returned by Parse for a malformed pattern.
// Pos is the byte offset in Pattern at which the problem was detected
// (len(Pattern) when the pattern ended prematurely).
//
// Parse is the only failing stage of the pipeline: once a pattern
// parses, simplification, NFA compilation, determinization, and
// matching are total.
type ParseError struct {
	Pattern string
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("dfaregex: parse error in %q at offset %d: %s", e.Pattern, e.Pos, e.Message)
}

// Error messages, one per malformed-pattern condition.
const (
	errUnterminatedGroup  = "unterminated group"
	errUnterminatedClass  = "unterminated character set"
	errUnterminatedEscape = "unterminated escape"
	errUnterminatedRepeat = "unterminated repeat operator"
	errUnmatchedClose     = "close parenthesis without matching open"
	errOperandlessRepeat  = "unary operator must follow a value"
	errBadRepeatBound     = "repeat operator must be given up to two non-negative integers"
	errRepeatMaxBelowMin  = "repeat operator maximum must be >= minimum"
	errDecreasingRange    = "character range end must be after start"
)
