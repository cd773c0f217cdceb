package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"fleet-console/internal/forms"
	"fleet-console/internal/services/flash"
	"fleet-console/internal/table"
	"fleet-console/internal/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static возвращает файловую систему статических ресурсов
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NavItem пункт навигационной панели
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

var navItems = []NavItem{
	{Label: "Página Inicial", Href: "/"},
	{Label: "Veículos", Href: "/vehicles"},
	{Label: "Motoristas", Href: "/drivers"},
}

// Nav возвращает пункты навигации с отмеченным активным разделом
func Nav(path string) []NavItem {
	items := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = isActive(item.Href, path)
		items[i] = item
	}
	return items
}

func isActive(href, path string) bool {
	if href == "/" {
		return path == "/" || strings.HasPrefix(path, "/control")
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// Dialog модальное окно подтверждения успешной операции
type Dialog struct {
	Title  string
	Href   string
	Button string
}

// FormView форма, подготовленная для шаблона
type FormView struct {
	Title   string
	Action  string
	Submit  string
	Inputs  []forms.Input
	Warning string
}

// NewFormView собирает представление формы
func NewFormView(title, action, submit string, f *forms.Form) *FormView {
	return &FormView{Title: title, Action: action, Submit: submit, Inputs: f.Inputs()}
}

// Page общие данные страниц консоли
type Page struct {
	Title   string
	Path    string
	Nav     []NavItem
	Toasts  []flash.Toast
	Dialog  *Dialog
	Table   *table.Model
	Loading *table.Model
	Form    *FormView
	Content interface{}
}

// NewPage создает страницу для пути запроса
func NewPage(title, path string) *Page {
	return &Page{Title: title, Path: path, Nav: Nav(path)}
}

// Fragment ответ на запрос фрагмента таблицы или панели
type Fragment struct {
	Table   *table.Model
	Toasts  []flash.Toast
	Content interface{}
}

// Funcs функции, доступные в шаблонах
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate": utils.FormatDate,
		"formatKm": func(n int) string {
			return fmt.Sprintf("%s km", utils.FormatNumber(n))
		},
		"formatNumber": utils.FormatNumber,
		"dash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "-"
			}
			return s
		},
	}
}

// Parse разбирает встроенные шаблоны
func Parse() (*template.Template, error) {
	tmpl, err := template.New("views").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}
	return tmpl, nil
}
