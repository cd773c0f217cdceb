package forms

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v2"
)

// Kind тип поля ввода
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindEmail  Kind = "email"
	KindTel    Kind = "tel"
	KindDate   Kind = "date"
	KindTime   Kind = "time"
	KindSelect Kind = "select"
)

// Option вариант выбора для поля KindSelect
type Option struct {
	Value string
	Label string
}

// Field декларативное описание поля формы
type Field struct {
	Name         string `yaml:"name"`
	Label        string `yaml:"label"`
	Placeholder  string `yaml:"placeholder"`
	Description  string `yaml:"description"`
	ErrorMessage string `yaml:"error_message"`
	Type         Kind   `yaml:"type"`
	Min          *int   `yaml:"min"`

	Options []Option `yaml:"-"`
}

// Kind возвращает тип поля; пустой тип считается текстовым
func (f Field) Kind() Kind {
	if f.Type == "" {
		return KindText
	}
	return f.Type
}

// MinValue нижняя граница числового поля, по умолчанию 1
func (f Field) MinValue() int {
	if f.Min != nil {
		return *f.Min
	}
	return 1
}

//go:embed descriptors.yaml
var descriptorsYAML []byte

var (
	loadOnce    sync.Once
	descriptors map[string][]Field
	loadErr     error
)

// Parse разбирает YAML документ со списками полей, сгруппированными по имени формы
func Parse(data []byte) (map[string][]Field, error) {
	out := make(map[string][]Field)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("ошибка разбора описаний форм: %w", err)
	}
	for form, fields := range out {
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if f.Name == "" {
				return nil, fmt.Errorf("форма %s: поле без имени", form)
			}
			if seen[f.Name] {
				return nil, fmt.Errorf("форма %s: поле %s объявлено дважды", form, f.Name)
			}
			seen[f.Name] = true
		}
	}
	return out, nil
}

// Descriptors возвращает копию описаний полей встроенной формы
func Descriptors(form string) ([]Field, error) {
	loadOnce.Do(func() {
		descriptors, loadErr = Parse(descriptorsYAML)
	})
	if loadErr != nil {
		return nil, loadErr
	}

	fields, ok := descriptors[form]
	if !ok {
		return nil, fmt.Errorf("форма %s не описана", form)
	}
	return append([]Field(nil), fields...), nil
}

// MustDescriptors как Descriptors, но паникует при ошибке; для инициализации пакетов
func MustDescriptors(form string) []Field {
	fields, err := Descriptors(form)
	if err != nil {
		panic(err)
	}
	return fields
}
