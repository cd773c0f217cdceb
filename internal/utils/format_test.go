package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12.345", FormatNumber(12345))
	assert.Equal(t, "850", FormatNumber(850))
	assert.Equal(t, "-1.200", FormatNumber(-1200))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "30/01/2023", FormatDate("2023-01-30"))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "ontem", FormatDate("ontem"))
}
