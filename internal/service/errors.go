package service

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrTemplateExists    = errors.New("template already exists")
	ErrSelectionNotFound = errors.New("selection target not found")
	ErrVariableNotFound  = errors.New("variable not found")
)

// ValidationError 前置条件不满足，Message 面向用户
// Err 可选，用于区分重复、不存在等情况
type ValidationError struct {
	Op      string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(op, message string) *ValidationError {
	return &ValidationError{Op: op, Message: message}
}

// IsValidationError 判断 err 链上是否有 *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
