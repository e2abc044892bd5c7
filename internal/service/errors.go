package service

import (
	"errors"
	"fmt"
	"strings"
)

// FieldViolation 单个字段的校验失败
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError 输入不满足约束，列出所有违规字段
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields 违规字段名，按出现顺序
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// ConflictError 唯一性冲突
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// AuthError 凭证无效
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// ForbiddenError 已认证但权限不足
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

var (
	ErrInvalidCredentials = &AuthError{Reason: "invalid username or password"}
	ErrTokenInvalid       = &AuthError{Reason: "invalid or expired token"}
	ErrAdminRequired      = &ForbiddenError{Reason: "administrator privileges required"}
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// NewValidationError 单字段校验失败
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Rule: rule, Message: message}}}
}

func notFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}
