package table

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"fleet-console/internal/models"
)

// DefaultPageSize фиксированный размер страницы таблиц консоли
const DefaultPageSize = 5

// Column описание колонки: идентификатор, заголовок и отрисовка ячейки
type Column[T any] struct {
	ID     string
	Header string
	Cell   func(T) template.HTML
}

// Text колонка с экранированным текстовым значением
func Text[T any](id, header string, value func(T) string) Column[T] {
	return Column[T]{
		ID:     id,
		Header: header,
		Cell: func(row T) template.HTML {
			return template.HTML(template.HTMLEscapeString(value(row)))
		},
	}
}

// Query параметры одного запроса страницы
type Query struct {
	Page     int
	PageSize int
	Search   string
}

// FetchFunc загружает страницу данных
type FetchFunc[T any] func(ctx context.Context, q Query) (*models.Page[T], error)

// Config настройки таблицы
type Config struct {
	Endpoint          string
	SearchPlaceholder string
	Searchable        bool
	PageSize          int
}

// Request состояние таблицы, присланное браузером
type Request struct {
	Page       int
	Search     string
	PrevSearch string
	Hidden     map[string]bool
}

// ParseRequest читает page, search, prev_search и hidden из query string
func ParseRequest(q url.Values) Request {
	req := Request{
		Page:       1,
		Search:     strings.TrimSpace(q.Get("search")),
		PrevSearch: strings.TrimSpace(q.Get("prev_search")),
		Hidden:     map[string]bool{},
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		req.Page = p
	}
	for _, id := range strings.Split(q.Get("hidden"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			req.Hidden[id] = true
		}
	}
	return req
}

// SearchChanged сообщает, что поисковая строка изменилась с прошлого запроса
func (r Request) SearchChanged() bool {
	return r.Search != r.PrevSearch
}

// TargetPage страница для загрузки: при смене поиска всегда первая
func (r Request) TargetPage() int {
	if r.SearchChanged() || r.Page < 1 {
		return 1
	}
	return r.Page
}

// View таблица, привязанная к колонкам и источнику данных
type View[T any] struct {
	cfg     Config
	columns []Column[T]
	fetch   FetchFunc[T]
}

// NewView создает таблицу
func NewView[T any](cfg Config, columns []Column[T], fetch FetchFunc[T]) *View[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &View[T]{cfg: cfg, columns: columns, fetch: fetch}
}

// Config возвращает настройки таблицы
func (v *View[T]) Config() Config {
	return v.cfg
}

// Load выполняет ровно одну загрузку страницы и строит модель для шаблона
func (v *View[T]) Load(ctx context.Context, req Request) (Model, error) {
	target := req.TargetPage()

	page, err := v.fetch(ctx, Query{Page: target, PageSize: v.cfg.PageSize, Search: req.Search})
	if err != nil {
		return Model{}, fmt.Errorf("ошибка загрузки страницы %d: %w", target, err)
	}

	m := v.base(req)
	m.Page = page.CurrentPage
	if m.Page < 1 {
		m.Page = target
	}
	m.TotalPages = page.TotalPages
	m.TotalItems = page.TotalItems
	m.Shown = len(page.Results)

	m.Rows = make([]Row, 0, len(page.Results))
	for _, item := range page.Results {
		row := Row{Cells: make([]Cell, 0, len(v.columns))}
		for _, col := range v.columns {
			row.Cells = append(row.Cells, Cell{
				ColumnID: col.ID,
				HTML:     col.Cell(item),
				Hidden:   req.Hidden[col.ID],
			})
		}
		m.Rows = append(m.Rows, row)
	}

	return m, nil
}

// Loading строит модель состояния загрузки без обращения к API
func (v *View[T]) Loading(req Request) Model {
	m := v.base(req)
	m.Page = req.TargetPage()
	m.Loading = true
	m.SkeletonRows = v.cfg.PageSize
	return m
}

func (v *View[T]) base(req Request) Model {
	m := Model{
		Config: v.cfg,
		Search: req.Search,
	}
	for _, col := range v.columns {
		m.Columns = append(m.Columns, HeaderCell{ID: col.ID, Header: col.Header, Hidden: req.Hidden[col.ID]})
	}
	return m
}

// HeaderCell заголовок колонки
type HeaderCell struct {
	ID     string
	Header string
	Hidden bool
}

// Cell отрисованная ячейка строки
type Cell struct {
	ColumnID string
	HTML     template.HTML
	Hidden   bool
}

// Row строка таблицы
type Row struct {
	Cells []Cell
}

// Model данные для отрисовки таблицы
type Model struct {
	Config
	Columns      []HeaderCell
	Rows         []Row
	Search       string
	Page         int
	TotalPages   int
	TotalItems   int
	Shown        int
	Loading      bool
	SkeletonRows int
}

// ColSpan число видимых колонок
func (m Model) ColSpan() int {
	n := 0
	for _, c := range m.Columns {
		if !c.Hidden {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

// Empty сообщает, что загрузка завершилась без строк
func (m Model) Empty() bool {
	return !m.Loading && len(m.Rows) == 0
}

// Skeleton индексы строк-заглушек для range в шаблоне
func (m Model) Skeleton() []int {
	out := make([]int, m.SkeletonRows)
	for i := range out {
		out[i] = i
	}
	return out
}

// Summary строка состояния пагинации
func (m Model) Summary() string {
	return fmt.Sprintf("Página %d de %d - Mostrando %d de %d resultados.", m.Page, m.TotalPages, m.Shown, m.TotalItems)
}

// HasPrev кнопка "назад" активна со второй страницы
func (m Model) HasPrev() bool {
	return !m.Loading && m.Page > 1
}

// HasNext кнопка "вперед" активна, пока текущая страница меньше общего числа страниц
func (m Model) HasNext() bool {
	return !m.Loading && m.Page < m.TotalPages
}

// PrevPage номер предыдущей страницы
func (m Model) PrevPage() int {
	if m.Page > 1 {
		return m.Page - 1
	}
	return 1
}

// NextPage номер следующей страницы
func (m Model) NextPage() int {
	return m.Page + 1
}

// HiddenParam скрытые колонки в формате параметра hidden
func (m Model) HiddenParam() string {
	ids := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		if c.Hidden {
			ids = append(ids, c.ID)
		}
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
