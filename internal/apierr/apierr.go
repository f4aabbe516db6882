package apierr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable error category. Callers branch on Kind,
// never on message text.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Auth(message string) *Error       { return New(KindAuth, message, nil) }
func Permission(message string) *Error { return New(KindPermission, message, nil) }
func NotFound(message string) *Error   { return New(KindNotFound, message, nil) }
func Validation(message string) *Error { return New(KindValidation, message, nil) }
func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf extracts the kind from any error in the chain; unknown errors are
// reported as internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// UserMessage renders the user-facing text for an error. Tagged errors carry
// their own message; anything else collapses to the generic failure text for
// its kind.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return MsgInternal
}

// Fixed user-facing messages. The admin UI is Korean-language; these strings
// are presentation only and carry no meaning the code depends on.
const (
	MsgTokenInvalid     = "토큰이 유효하지 않습니다."
	MsgUserInactive     = "비활성화된 사용자입니다."
	MsgNoPermission     = "권한이 없습니다."
	MsgTemplateNotFound = "템플릿을 찾을 수 없습니다."
	MsgCourseNotFound   = "과정을 찾을 수 없습니다."
	MsgInstructorNotFound = "강사를 찾을 수 없습니다."
	MsgDocumentNotFound = "문서를 찾을 수 없습니다."
	MsgPackageNotFound  = "브로셔 패키지를 찾을 수 없습니다."
	MsgIncludeRequired  = "과정 또는 강사 중 하나 이상을 포함해야 합니다."
	MsgBadSourceMode    = "지원하지 않는 소스 모드입니다."
	MsgSaveFailed       = "저장에 실패했습니다."
	MsgQueryFailed      = "조회에 실패했습니다."
	MsgInternal         = "요청 처리 중 오류가 발생했습니다."
)
