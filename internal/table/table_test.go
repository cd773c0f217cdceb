package table

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"fleet-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string
	Name string
}

type recorder struct {
	queries []Query
	page    *models.Page[row]
	err     error
}

func (r *recorder) fetch(_ context.Context, q Query) (*models.Page[row], error) {
	r.queries = append(r.queries, q)
	if r.err != nil {
		return nil, r.err
	}
	return r.page, nil
}

func newView(rec *recorder) *View[row] {
	return NewView(Config{Endpoint: "/rows/table", Searchable: true}, []Column[row]{
		Text("id", "ID", func(r row) string { return r.ID }),
		Text("name", "Nome", func(r row) string { return r.Name }),
	}, rec.fetch)
}

func TestParseRequest(t *testing.T) {
	req := ParseRequest(url.Values{
		"page":        {"3"},
		"search":      {" 2023-01-30 "},
		"prev_search": {"2023-01-30"},
		"hidden":      {"name, id,"},
	})

	assert.Equal(t, 3, req.Page)
	assert.Equal(t, "2023-01-30", req.Search)
	assert.False(t, req.SearchChanged())
	assert.Equal(t, 3, req.TargetPage())
	assert.True(t, req.Hidden["name"])
	assert.True(t, req.Hidden["id"])

	bad := ParseRequest(url.Values{"page": {"-1"}})
	assert.Equal(t, 1, bad.Page)
}

func TestLoadFetchesExactlyOnce(t *testing.T) {
	rec := &recorder{page: &models.Page[row]{
		Results:     []row{{ID: "1", Name: "Ana"}},
		TotalItems:  6,
		TotalPages:  2,
		CurrentPage: 2,
	}}

	m, err := newView(rec).Load(context.Background(), Request{Page: 2})
	require.NoError(t, err)

	require.Len(t, rec.queries, 1)
	assert.Equal(t, Query{Page: 2, PageSize: DefaultPageSize}, rec.queries[0])
	assert.Equal(t, "Página 2 de 2 - Mostrando 1 de 6 resultados.", m.Summary())
	assert.True(t, m.HasPrev())
	assert.False(t, m.HasNext())
	require.Len(t, m.Rows, 1)
	assert.Equal(t, "Ana", string(m.Rows[0].Cells[1].HTML))
}

func TestSearchChangeResetsToFirstPage(t *testing.T) {
	rec := &recorder{page: &models.Page[row]{CurrentPage: 1, TotalPages: 1}}
	v := newView(rec)

	_, err := v.Load(context.Background(), Request{Page: 4, Search: "2023-01-30"})
	require.NoError(t, err)
	_, err = v.Load(context.Background(), Request{Page: 4, Search: "", PrevSearch: "2023-01-30"})
	require.NoError(t, err)

	require.Len(t, rec.queries, 2)
	assert.Equal(t, Query{Page: 1, PageSize: 5, Search: "2023-01-30"}, rec.queries[0])
	assert.Equal(t, Query{Page: 1, PageSize: 5}, rec.queries[1])
}

func TestEmptyPageSpansVisibleColumns(t *testing.T) {
	rec := &recorder{page: &models.Page[row]{}}

	m, err := newView(rec).Load(context.Background(), Request{Page: 1, Hidden: map[string]bool{"name": true}})
	require.NoError(t, err)

	assert.True(t, m.Empty())
	assert.Equal(t, 1, m.ColSpan())
	assert.Equal(t, "name", m.HiddenParam())
	assert.False(t, m.HasPrev())
	assert.False(t, m.HasNext())
}

func TestLoadingDoesNotFetch(t *testing.T) {
	rec := &recorder{}

	m := newView(rec).Loading(Request{Page: 2})

	assert.Empty(t, rec.queries)
	assert.True(t, m.Loading)
	assert.False(t, m.Empty())
	assert.Len(t, m.Skeleton(), DefaultPageSize)
	assert.False(t, m.HasPrev())
	assert.False(t, m.HasNext())
}

func TestLoadWrapsFetchError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{err: boom}

	_, err := newView(rec).Load(context.Background(), Request{Page: 1})
	assert.ErrorIs(t, err, boom)
}

func TestTextEscapes(t *testing.T) {
	col := Text("x", "X", func(r row) string { return r.Name })
	assert.Equal(t, "&lt;b&gt;", string(col.Cell(row{Name: "<b>"})))
}
