package dto

import (
	"bytes"
	"errors"
	"reflect"

	"github.com/goccy/go-json"
)

var errNullNotAllowed = errors.New("null is not allowed")

// Optional 局部更新字段：Set 表示请求体中出现了该字段
// 对非指针类型，显式的 null 视为非法；Optional[*T] 的 null 表示清空
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some 构造一个已设置的字段
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		if reflect.TypeOf(&zero).Elem().Kind() != reflect.Pointer {
			return errNullNotAllowed
		}
		o.Value = zero
		o.Set = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero 未设置的字段在 omitzero 下不输出
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// ValidationValue 供校验器取值：未设置时返回 nil，使 omitempty 跳过
func (o Optional[T]) ValidationValue() any {
	if !o.Set {
		return nil
	}
	return &o.Value
}
