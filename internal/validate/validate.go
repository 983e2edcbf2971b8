package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TitleMaxLen = 25
	BodyMaxLen  = 255
)

type Code string

const (
	CodeMissingField        Code = "MissingField"
	CodeInvalidType         Code = "InvalidType"
	CodeTooLong             Code = "TooLong"
	CodeUnacceptableContent Code = "UnacceptableContent"
)

type FieldError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Errors maps a field name to every violation recorded for it. It is
// returned as a single error so callers see all problems in one response.
type Errors map[string][]FieldError

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

func (e Errors) Add(field string, code Code, msg string) {
	e[field] = append(e[field], FieldError{Code: code, Message: msg})
}

// CleanFunc reports whether text is acceptable. The content policy is
// injected so it can be swapped without touching the validation pipeline.
type CleanFunc func(string) bool

// PostInput is the candidate title/body pair for a create or update.
type PostInput struct {
	Title string `json:"title" validate:"required,max=25,clean"`
	Body  string `json:"body" validate:"required,max=255,clean"`
}

type PostValidator struct {
	v     *validator.Validate
	clean CleanFunc
}

func NewPostValidator(clean CleanFunc) *PostValidator {
	if clean == nil {
		clean = DefaultClean
	}
	pv := &PostValidator{clean: clean}

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clean", func(fl validator.FieldLevel) bool {
		return pv.clean(fl.Field().String())
	})
	pv.v = v
	return pv
}

// Validate checks every field and returns Errors carrying all violations,
// or nil when the input is acceptable.
func (pv *PostValidator) Validate(in PostInput) error {
	err := pv.v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := Errors{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out.Add(field, CodeMissingField, fmt.Sprintf("%s is required", field))
		case "max":
			out.Add(field, CodeTooLong, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "clean":
			out.Add(field, CodeUnacceptableContent, fmt.Sprintf("%s contains unacceptable content", field))
		default:
			out.Add(field, CodeInvalidType, fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}
