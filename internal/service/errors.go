package service

import (
	"errors"
	"net/http"
)

// Kind 錯誤分類，決定 HTTP 狀態與錯誤碼
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindConflict
	KindNotFound
	KindUpstreamConfig
	KindUpstream
	KindStorage
	KindTokenMissing
	KindTokenExpired
	KindTokenInvalid
	KindTokenRevoked
	KindInternal
)

var kindInfo = map[Kind]struct {
	status int
	code   string
}{
	KindValidation:     {http.StatusBadRequest, "validation_error"},
	KindAuth:           {http.StatusUnauthorized, "auth_error"},
	KindConflict:       {http.StatusConflict, "conflict"},
	KindNotFound:       {http.StatusNotFound, "not_found"},
	KindUpstreamConfig: {http.StatusInternalServerError, "upstream_config_error"},
	KindUpstream:       {http.StatusInternalServerError, "upstream_error"},
	KindStorage:        {http.StatusInternalServerError, "storage_error"},
	KindTokenMissing:   {http.StatusUnauthorized, "authorization_required"},
	KindTokenExpired:   {http.StatusUnauthorized, "token_expired"},
	KindTokenInvalid:   {http.StatusUnprocessableEntity, "invalid_token"},
	KindTokenRevoked:   {http.StatusUnauthorized, "token_revoked"},
	KindInternal:       {http.StatusInternalServerError, "internal_error"},
}

func (k Kind) Status() int {
	if info, ok := kindInfo[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

func (k Kind) Code() string {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return "internal_error"
}

// Error 服務層回傳的錯誤；Message 可直接給使用者看，Err 只寫進日誌
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf 非 *Error 的錯誤一律視為 0 (未分類)
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string, err error) error {
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}

func storageError(err error) error {
	return &Error{Kind: KindStorage, Message: "database error", Err: err}
}

func internalError(err error) error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

func tokenError(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
