package utils

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatNumber форматирует целое число с разделителями разрядов pt-BR (12.345)
func FormatNumber(n int) string {
	return ptBR.Sprintf("%d", n)
}

// FormatDate переводит дату YYYY-MM-DD в DD/MM/YYYY; нераспознанные значения возвращаются как есть
func FormatDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006")
}
