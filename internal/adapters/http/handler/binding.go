package handler

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator は go-playground/validator を echo.Validator として利用するためのアダプタです。
// エラーのフィールド名には JSON タグ名を用います。
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator は RequestValidator を生成します。
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate は構造体の validate タグを検証します。
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("parameter '%s' must be an integer", e.name)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, &paramError{name: name}
	}
	return id, nil
}

// normalizer はバインド後、検証前に値を整形するリクエストです。
type normalizer interface {
	Normalize()
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errMalformedBody
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	return c.Validate(req)
}
