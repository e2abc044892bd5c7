package util

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/service"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterCustomTypeFunc(optionalValue,
		dto.Optional[string]{}, dto.Optional[*string]{}, dto.Optional[bool]{})
}

func optionalValue(field reflect.Value) interface{} {
	if o, ok := field.Interface().(interface{ ValidationValue() any }); ok {
		return o.ValidationValue()
	}
	return nil
}

// ValidateDTO 校验请求对象，返回包含全部违规字段的 *service.ValidationError
func ValidateDTO(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	violations := make([]service.FieldViolation, 0, len(vErrs))
	for _, fe := range vErrs {
		violations = append(violations, service.FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return &service.ValidationError{Violations: violations}
}

func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// BindError 将请求体解析失败转换为校验错误
func BindError(err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return service.NewValidationError(typeErr.Field, "type",
			fmt.Sprintf("must be of type %s", typeErr.Type))
	}
	// gin 默认使用标准库解码
	var stdTypeErr *stdjson.UnmarshalTypeError
	if errors.As(err, &stdTypeErr) && stdTypeErr.Field != "" {
		return service.NewValidationError(stdTypeErr.Field, "type",
			fmt.Sprintf("must be of type %s", stdTypeErr.Type))
	}
	return service.NewValidationError("body", "format", err.Error())
}
