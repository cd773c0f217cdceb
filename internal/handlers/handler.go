package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleet-console/internal/middleware"
	"fleet-console/internal/models"
	"fleet-console/internal/services"
	"fleet-console/internal/services/flash"
	"fleet-console/internal/services/fleetapi"
	"fleet-console/internal/table"
	"fleet-console/internal/views"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusClientClosed ответ на запрос, который браузер прервал сам
const statusClientClosed = 499

// FleetAPI вызовы API автопарка, используемые страницами консоли
type FleetAPI interface {
	services.ControlAPI

	ListVehicles(ctx context.Context, page, pageSize int, search string) (*models.Page[models.Vehicle], error)
	CreateVehicle(ctx context.Context, in models.VehicleInput) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int) error

	ListDrivers(ctx context.Context, page, pageSize int, search string) (*models.Page[models.Driver], error)
	CreateDriver(ctx context.Context, in models.DriverInput) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id int) error

	ListControls(ctx context.Context, page, pageSize int, search string) (*models.Page[models.Control], error)
	CreateControl(ctx context.Context, in models.ControlInput) (*models.Control, error)
	UpdateControl(ctx context.Context, id int, in models.ControlInput) error
	DeleteControl(ctx context.Context, id int) error
}

// Handler страницы консоли и их зависимости
type Handler struct {
	api      FleetAPI
	flash    flash.Store
	controls *services.ControlService

	vehicleTable *table.View[models.Vehicle]
	driverTable  *table.View[models.Driver]
	controlTable *table.View[models.Control]
}

// NewHandler создает обработчики страниц
func NewHandler(api FleetAPI, store flash.Store) *Handler {
	return &Handler{
		api:          api,
		flash:        store,
		controls:     services.NewControlService(api),
		vehicleTable: newVehicleTable(api),
		driverTable:  newDriverTable(api),
		controlTable: newControlTable(api),
	}
}

func requestLogger(c *gin.Context) *log.Entry {
	return log.WithFields(log.Fields{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
	})
}

// render отрисовывает страницу вместе с отложенными уведомлениями сессии
func (h *Handler) render(c *gin.Context, status int, name string, page *views.Page) {
	page.Toasts = append(h.popFlash(c), page.Toasts...)
	c.HTML(status, name, page)
}

func (h *Handler) popFlash(c *gin.Context) []flash.Toast {
	session := middleware.GetSessionID(c)
	if session == "" {
		return nil
	}
	toasts, err := h.flash.Pop(c.Request.Context(), session)
	if err != nil {
		requestLogger(c).WithError(err).Warn("Не удалось получить уведомления сессии")
		return nil
	}
	return toasts
}

// redirectWithToast откладывает уведомление до следующей страницы и перенаправляет
func (h *Handler) redirectWithToast(c *gin.Context, location string, toast flash.Toast) {
	if session := middleware.GetSessionID(c); session != "" {
		if err := h.flash.Push(c.Request.Context(), session, toast); err != nil {
			requestLogger(c).WithError(err).Warn("Не удалось сохранить уведомление сессии")
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// failure строит уведомление об ошибке API. Для прерванного браузером
// запроса возвращает false: показывать уведомление некому.
func failure(c *gin.Context, err error, title, fallback string) (flash.Toast, bool) {
	if fleetapi.IsCanceled(err) {
		requestLogger(c).WithError(err).Debug("Запрос прерван клиентом")
		return flash.Toast{}, false
	}
	requestLogger(c).WithError(err).Warn(title)
	return flash.Failure(title, fleetapi.Message(err, fallback)), true
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// renderTablePage отрисовывает список: первая загрузка всегда идет с первой страницы,
// дальнейшие переходы выполняет фрагмент таблицы
func renderTablePage[T any](h *Handler, c *gin.Context, view *table.View[T], name string, page *views.Page, errTitle string) {
	req := table.ParseRequest(c.Request.URL.Query())
	req.Page = 1
	loading := view.Loading(req)
	page.Loading = &loading

	model, err := view.Load(c.Request.Context(), req)
	if err != nil {
		toast, ok := failure(c, err, errTitle, "Não foi possível carregar os dados")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		page.Toasts = append(page.Toasts, toast)
		model = view.Loading(req)
		model.Loading = false
		model.Page = 1
	}
	page.Table = &model

	h.render(c, http.StatusOK, name, page)
}

// renderTableFragment отвечает на смену страницы или поиска ровно одной загрузкой
func renderTableFragment[T any](c *gin.Context, view *table.View[T], errTitle string) {
	req := table.ParseRequest(c.Request.URL.Query())

	model, err := view.Load(c.Request.Context(), req)
	if err != nil {
		toast, ok := failure(c, err, errTitle, "Não foi possível carregar os dados")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		c.HTML(http.StatusBadGateway, "table.html", views.Fragment{Toasts: []flash.Toast{toast}})
		return
	}

	c.HTML(http.StatusOK, "table.html", views.Fragment{Table: &model})
}

// NotFound страница 404
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found.html", views.NewPage("Página não encontrada", c.Request.URL.Path))
}

// Health проверка работоспособности консоли
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// failureStatus код ответа страницы при ошибке API: клиентские ошибки API
// передаются как есть, остальное считается ошибкой шлюза
func failureStatus(err error) int {
	if status := fleetapi.StatusOf(err); status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}

func actionLink(href, label string) string {
	return fmt.Sprintf(`<a class="button-outline" href="%s">%s</a>`, template.HTMLEscapeString(href), template.HTMLEscapeString(label))
}

func deleteButton(action, confirm string) string {
	return fmt.Sprintf(`<form method="post" action="%s" data-confirm="%s"><button type="submit" class="button-outline">Excluir</button></form>`,
		template.HTMLEscapeString(action), template.HTMLEscapeString(confirm))
}

func actions(parts ...string) template.HTML {
	return template.HTML(`<div class="row-actions">` + strings.Join(parts, "") + `</div>`)
}
