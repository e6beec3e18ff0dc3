package scoring

import (
	"errors"
	"fmt"
)

// Error is a caller-visible, recoverable failure raised by the calculator.
//
// Every failure is caused by bad input (an unknown player, a malformed
// block, a repeated match id), never by a transient condition, so nothing
// retries. Errors propagate unmodified from the point of detection.
//
// Match against the sentinels with errors.Is:
//
//	if errors.Is(err, scoring.ErrMatchCompleted) { ... }
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// MatchID identifies the affected match, when known.
	MatchID string
}

// ErrorCode categorizes calculator errors.
type ErrorCode string

const (
	// ErrCodeInvalidPlayer indicates a player number outside {1, 2}.
	ErrCodeInvalidPlayer ErrorCode = "INVALID_PLAYER"

	// ErrCodeMatchCompleted indicates a point recorded on a finished match.
	ErrCodeMatchCompleted ErrorCode = "MATCH_COMPLETED"

	// ErrCodeInvalidMatchFormat indicates a malformed match block.
	ErrCodeInvalidMatchFormat ErrorCode = "INVALID_MATCH_FORMAT"

	// ErrCodeInvalidMatchData indicates that no match data was supplied.
	ErrCodeInvalidMatchData ErrorCode = "INVALID_MATCH_DATA"

	// ErrCodeDuplicateMatch indicates an id that is already registered.
	ErrCodeDuplicateMatch ErrorCode = "DUPLICATE_MATCH"

	// ErrCodeMatchNotFound indicates a lookup of an unknown match id.
	ErrCodeMatchNotFound ErrorCode = "MATCH_NOT_FOUND"

	// ErrCodePlayerNotFound indicates a lookup of an unknown player.
	ErrCodePlayerNotFound ErrorCode = "PLAYER_NOT_FOUND"

	// ErrCodeInvalidQuery indicates malformed or unrecognized query text.
	ErrCodeInvalidQuery ErrorCode = "INVALID_QUERY"
)

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrInvalidPlayer      = &Error{Code: ErrCodeInvalidPlayer}
	ErrMatchCompleted     = &Error{Code: ErrCodeMatchCompleted}
	ErrInvalidMatchFormat = &Error{Code: ErrCodeInvalidMatchFormat}
	ErrInvalidMatchData   = &Error{Code: ErrCodeInvalidMatchData}
	ErrDuplicateMatch     = &Error{Code: ErrCodeDuplicateMatch}
	ErrMatchNotFound      = &Error{Code: ErrCodeMatchNotFound}
	ErrPlayerNotFound     = &Error{Code: ErrCodePlayerNotFound}
	ErrInvalidQuery       = &Error{Code: ErrCodeInvalidQuery}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.MatchID != "" {
		return fmt.Sprintf("%s: %s (match=%s)", e.Code, e.Message, e.MatchID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the ErrorCode from err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// NewInvalidPlayerError creates an Error for a player number outside {1, 2}.
func NewInvalidPlayerError(player int) *Error {
	return &Error{
		Code:    ErrCodeInvalidPlayer,
		Message: fmt.Sprintf("invalid player number: %d", player),
	}
}

// NewMatchCompletedError creates an Error for a point recorded after the match ended.
func NewMatchCompletedError(matchID string) *Error {
	return &Error{
		Code:    ErrCodeMatchCompleted,
		Message: "cannot record points after match completion",
		MatchID: matchID,
	}
}

// NewInvalidMatchFormatError creates an Error for a malformed match block.
func NewInvalidMatchFormatError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidMatchFormat,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidMatchDataError creates an Error for missing match data.
func NewInvalidMatchDataError(message string) *Error {
	return &Error{Code: ErrCodeInvalidMatchData, Message: message}
}

// NewDuplicateMatchError creates an Error for a repeated match id.
func NewDuplicateMatchError(matchID string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateMatch,
		Message: fmt.Sprintf("match %s already exists", matchID),
		MatchID: matchID,
	}
}

// NewMatchNotFoundError creates an Error for an unknown match id.
func NewMatchNotFoundError(matchID string) *Error {
	return &Error{
		Code:    ErrCodeMatchNotFound,
		Message: fmt.Sprintf("match %s not found", matchID),
		MatchID: matchID,
	}
}

// NewPlayerNotFoundError creates an Error for an unknown player name.
func NewPlayerNotFoundError(name string) *Error {
	return &Error{
		Code:    ErrCodePlayerNotFound,
		Message: fmt.Sprintf("player %s not found", name),
	}
}

// NewInvalidQueryError creates an Error for unparseable query text.
func NewInvalidQueryError(message string) *Error {
	return &Error{Code: ErrCodeInvalidQuery, Message: message}
}
