// Package validate checks form structs against their `validate` tags and
// reports the first failure as an apperr.ErrValidation.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/irsalhamdi/realty-training/apperr"
)

var validate *validator.Validate

var translator ut.Translator

func init() {

	validate = validator.New()

	// Report json names ("categoryId") instead of Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)
}

// Check validates val against its struct tags. Values are expected to be
// trimmed by the caller: "required" does not treat whitespace as empty.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {

		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		if len(verrors) < 1 {
			return nil
		}

		return apperr.Validation(verrors[0].Translate(translator))
	}

	return nil
}

// Email reports whether s is a well formed email address.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func GenerateID() string {
	return uuid.NewString()
}
