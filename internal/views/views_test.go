package views

import (
	"bytes"
	"io/fs"
	"testing"

	"fleet-console/internal/services/flash"
	"fleet-console/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavMarksActiveSection(t *testing.T) {
	active := func(items []NavItem) string {
		for _, i := range items {
			if i.Active {
				return i.Label
			}
		}
		return ""
	}

	assert.Equal(t, "Página Inicial", active(Nav("/")))
	assert.Equal(t, "Página Inicial", active(Nav("/control/42/edit")))
	assert.Equal(t, "Veículos", active(Nav("/vehicles/new")))
	assert.Equal(t, "Motoristas", active(Nav("/drivers")))
	assert.Equal(t, "", active(Nav("/unknown")))
}

func TestTemplatesParseAndRender(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	for _, name := range []string{"controls.html", "entities.html", "form.html", "control_edit.html", "control_delete.html", "control_detail.html", "table.html", "not_found.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	page := NewPage("Veículos", "/vehicles")
	page.Toasts = []flash.Toast{flash.Failure("Erro", "falhou")}
	page.Table = &table.Model{Config: table.Config{Endpoint: "/vehicles/table"}, Columns: []table.HeaderCell{{ID: "plate", Header: "Placa"}}}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "entities.html", page))
	assert.Contains(t, buf.String(), "Sem dados")
	assert.Contains(t, buf.String(), "falhou")
}

func TestStaticAssets(t *testing.T) {
	_, err := fs.Stat(Static(), "app.js")
	assert.NoError(t, err)
	_, err = fs.Stat(Static(), "app.css")
	assert.NoError(t, err)
}

func TestSearchRefetchesOnlyOnTermChange(t *testing.T) {
	script, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)

	body := string(script)
	assert.Contains(t, body, "if (self.search.value.trim() === self.requestedSearch) return;")
	assert.Contains(t, body, "this.controller.abort()")
	assert.NotContains(t, body, "DEBOUNCE")
}
