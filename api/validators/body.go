package validators

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockroom/pkg/codec"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

// MaxBodyBytes caps request bodies read through DecodeBody.
const MaxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	// Decimals are compared through their sign so gte=0 reads as "not negative".
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// DecodeBody reads the request body, decodes it with c and validates the
// result. Any decode failure is reported as an internal error so clients
// cannot tell a bad envelope from bad JSON; a well-formed body that breaks a
// field rule is a validation error.
func DecodeBody(r *http.Request, c codec.Codec, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read request body")
	}
	if err := c.Decode(raw, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode request body")
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	details := map[string]string{}
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		msg := validationMessage(fieldErr)
		details[fieldErr.Field()] = msg
		messages = append(messages, fieldErr.Field()+" "+msg)
	}
	sort.Strings(messages)
	return pkgerrors.New(pkgerrors.CodeValidation, strings.Join(messages, "; ")).WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		if fe.Param() == "0" {
			return "must not be negative"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
