package validator

import (
	"errors"
	"strings"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
)

// OneOf namesのいずれかに完全一致することを要求するルール
func OneOf(names ...string) vd.Rule {
	return vd.In(lo.ToAnySlice(names)...).Error("must be one of " + strings.Join(names, ", "))
}

// OneOfRequired OneOf with Required
func OneOfRequired(names ...string) []vd.Rule {
	return []vd.Rule{
		vd.Required,
		OneOf(names...),
	}
}

// ParsableBy parseで解釈できる文字列であることを要求するルール
//
// parseが返したエラーのメッセージがそのまま検証エラーになります
func ParsableBy[T any](parse func(string) (T, error)) vd.Rule {
	return vd.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return errors.New("must be a string")
		}
		_, err := parse(s)
		return err
	})
}
