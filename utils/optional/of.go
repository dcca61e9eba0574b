package optional

import (
	"bytes"
	"encoding"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Of 値が指定されたかどうかを区別できる値
//
// ゼロ値は「未指定」を表します
type Of[T any] struct {
	V     T
	Valid bool
}

// From 指定済みの値を返します
func From[T any](v T) Of[T] {
	return New(v, true)
}

func New[T any](v T, valid bool) Of[T] {
	return Of[T]{V: v, Valid: valid}
}

// ValueOrZero 指定されていればその値を、そうでなければTのゼロ値を返します
func (o Of[T]) ValueOrZero() T {
	if o.Valid {
		return o.V
	}
	var zero T
	return zero
}

// Or 指定されていればその値を、そうでなければfallbackを返します
func (o Of[T]) Or(fallback T) T {
	if o.Valid {
		return o.V
	}
	return fallback
}

func (o *Of[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		var zero T
		o.V, o.Valid = zero, false
		return nil
	}

	if err := jsoniter.ConfigFastest.Unmarshal(data, &o.V); err != nil {
		return err
	}

	o.Valid = true
	return nil
}

func (o Of[T]) MarshalJSON() ([]byte, error) {
	if o.Valid {
		return jsoniter.ConfigFastest.Marshal(o.V)
	}
	return jsoniter.ConfigFastest.Marshal(nil)
}

func (o *Of[T]) UnmarshalText(text []byte) error {
	str := string(text)
	if str == "" || str == "null" {
		var zero T
		o.V, o.Valid = zero, false
		return nil
	}

	var err error
	switch v := any(&o.V).(type) {
	case encoding.TextUnmarshaler:
		err = v.UnmarshalText(text)
	case *string:
		*v = str
	default:
		err = jsoniter.ConfigFastest.NewDecoder(strings.NewReader(str)).Decode(&o.V)
	}
	o.Valid = err == nil
	return err
}

// MarshalYAML gopkg.in/yaml.v3 Marshaler 実装
//
// 未指定の場合はnullとして出力されます
func (o Of[T]) MarshalYAML() (any, error) {
	if o.Valid {
		return o.V, nil
	}
	return nil, nil
}
