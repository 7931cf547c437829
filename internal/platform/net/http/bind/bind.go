// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps a decoded request body
const MaxBody = 1 << 20

// Validator holds the shared validator and its english translator
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once   sync.Once
	shared *Validator
)

// Get returns the process validator, building it on first use
func Get() *Validator {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		// messages name fields the way clients send them
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")
		_ = v.RegisterValidation("keyname", keyName)
		translate(v, trans, "keyname", "{0} must be a key value such as A or Enter")

		shared = &Validator{v: v, trans: trans}
	})
	return shared
}

// Struct validates s and returns a validation error naming the first bad field
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		l := logger.Named("bind")
		l.Error().Err(inv).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(x.trans)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, err.Error())
}

// ParseJSON decodes one JSON value into T and validates it. Unknown fields,
// trailing data and bodies over MaxBody are rejected. An empty body is an
// error except on GET and DELETE, where T stays zero.
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero T
	defer func() { _ = r.Body.Close() }()

	peek := make([]byte, 1)
	n, _ := r.Body.Read(peek)
	if n == 0 {
		switch r.Method {
		case http.MethodGet, http.MethodDelete:
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}
	body := io.LimitReader(io.MultiReader(bytes.NewReader(peek[:n]), r.Body), MaxBody)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Get().Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// keyName accepts KeyboardEvent.key style values: a printable glyph or a
// short name, never control characters
func keyName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || utf8.RuneCountInString(s) > 32 || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
