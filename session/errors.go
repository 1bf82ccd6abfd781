package session

import "fmt"

// ErrorCode classifies a session-level failure.
type ErrorCode string

const (
	ErrInvalidPath  ErrorCode = "ERR_INVALID_PATH"
	ErrProtocol     ErrorCode = "ERR_PROTOCOL"
	ErrParse        ErrorCode = "ERR_PARSE"
	ErrSizeExceeded ErrorCode = "ERR_SIZE_EXCEEDED"
	ErrFeeOverflow  ErrorCode = "ERR_FEE_OVERFLOW"
	ErrUserRejected ErrorCode = "ERR_USER_REJECTED"
	ErrInternal     ErrorCode = "ERR_INTERNAL"
)

// Error reports why a sign-transaction chunk could not be processed. The
// dispatcher maps Code onto a status word at the boundary; nothing below
// the dispatcher interprets status words.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func sessErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
