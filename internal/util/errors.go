package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrProgressNotFound   = errors.New("progress not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
)

// ValidationError 入参校验失败，永远在写库之前返回
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrAssessmentNotFound)
}
