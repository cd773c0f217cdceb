package forms

import (
	"net/url"
	"strconv"
	"strings"
)

// Form состояние формы: значения, ошибки и правила проверки
type Form struct {
	Fields    []Field
	Values    map[string]string
	Errors    Errors
	validator *Validator
}

// Input поле формы, подготовленное для шаблона
type Input struct {
	Field
	ID    string
	Value string
	Error string
}

// New создает форму с пустыми значениями для каждого поля
func New(fields []Field) *Form {
	f := &Form{Fields: fields}
	f.Reset()
	return f
}

// Reset очищает значения и ошибки
func (f *Form) Reset() {
	f.Values = make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		f.Values[field.Name] = ""
	}
	f.Errors = Errors{}
}

// SetOptions задает варианты выбора поля и пересобирает правила
func (f *Form) SetOptions(name string, options []Option) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Options = options
		}
	}
	f.validator = nil
}

// Bind переносит значения полей из отправленной формы
func (f *Form) Bind(values url.Values) {
	for _, field := range f.Fields {
		f.Values[field.Name] = values.Get(field.Name)
	}
}

// Set задает значение поля
func (f *Form) Set(name, value string) {
	f.Values[name] = value
}

// Validate проверяет все поля; отправка разрешена только при true
func (f *Form) Validate() bool {
	if f.validator == nil {
		f.validator = BuildValidator(f.Fields)
	}
	f.Errors = f.validator.Validate(f.Values)
	return len(f.Errors) == 0
}

// String значение поля без пробелов по краям
func (f *Form) String(name string) string {
	return strings.TrimSpace(f.Values[name])
}

// Int значение числового поля; вызывать после успешной Validate
func (f *Form) Int(name string) int {
	n, _ := strconv.Atoi(f.String(name))
	return n
}

// Inputs возвращает поля в порядке описания вместе со значениями и ошибками
func (f *Form) Inputs() []Input {
	inputs := make([]Input, 0, len(f.Fields))
	for _, field := range f.Fields {
		inputs = append(inputs, Input{
			Field: field,
			ID:    "field-" + field.Name,
			Value: f.Values[field.Name],
			Error: f.Errors[field.Name],
		})
	}
	return inputs
}
