package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrInvalidPassword  = errors.New("invalid credentials")
	ErrPatternNotFound  = errors.New("pattern not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError 边界校验失败：越界输入在落库前被拒绝
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
