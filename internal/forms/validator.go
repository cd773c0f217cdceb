package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultNumberMessage = "Campo obrigatório, preencha com um número!"
	defaultTextMessage   = "Campo obrigatório, preencha com um texto!"
)

// Errors ошибки валидации по имени поля
type Errors map[string]string

// Has сообщает, есть ли ошибка у поля
func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Validator набор правил, собранный из описаний полей
type Validator struct {
	rules    []rule
	validate *validator.Validate
}

type rule struct {
	field   Field
	message string
	check   func(v *validator.Validate, raw string) bool
}

// BuildValidator собирает правила проверки из списка описаний полей.
// Числовые поля требуют целое число не меньше Min, остальные - непустое значение.
func BuildValidator(fields []Field) *Validator {
	v := validator.New()
	_ = v.RegisterValidation("clock", validateClock)

	rules := make([]rule, 0, len(fields))
	for _, f := range fields {
		rules = append(rules, rule{
			field:   f,
			message: messageFor(f),
			check:   checkFor(f),
		})
	}

	return &Validator{rules: rules, validate: v}
}

// Validate проверяет значения и возвращает ошибки; пустой результат означает успех
func (v *Validator) Validate(values map[string]string) Errors {
	errs := Errors{}
	for _, r := range v.rules {
		if !r.check(v.validate, values[r.field.Name]) {
			errs[r.field.Name] = r.message
		}
	}
	return errs
}

func messageFor(f Field) string {
	if f.ErrorMessage != "" {
		return f.ErrorMessage
	}
	if f.Kind() == KindNumber {
		return defaultNumberMessage
	}
	return defaultTextMessage
}

func checkFor(f Field) func(v *validator.Validate, raw string) bool {
	switch f.Kind() {
	case KindNumber:
		min := f.MinValue()
		return func(v *validator.Validate, raw string) bool {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return false
			}
			return v.Var(n, "gte="+strconv.Itoa(min)) == nil
		}
	case KindEmail:
		return tagCheck("required,email")
	case KindDate:
		return tagCheck("required,datetime=2006-01-02")
	case KindTime:
		return tagCheck("required,clock")
	case KindSelect:
		return func(v *validator.Validate, raw string) bool {
			raw = strings.TrimSpace(raw)
			if v.Var(raw, "required") != nil {
				return false
			}
			if len(f.Options) == 0 {
				return true
			}
			for _, opt := range f.Options {
				if opt.Value == raw {
					return true
				}
			}
			return false
		}
	default:
		return tagCheck("required")
	}
}

func tagCheck(tag string) func(v *validator.Validate, raw string) bool {
	return func(v *validator.Validate, raw string) bool {
		return v.Var(strings.TrimSpace(raw), tag) == nil
	}
}

// validateClock принимает время в формате HH:MM или HH:MM:SS
func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
