package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"fleet-console/internal/forms"
	"fleet-console/internal/models"
	"fleet-console/internal/services/flash"
	"fleet-console/internal/table"
	"fleet-console/internal/views"

	"github.com/gin-gonic/gin"
)

func newDriverTable(api FleetAPI) *table.View[models.Driver] {
	columns := []table.Column[models.Driver]{
		table.Text("id", "ID", func(d models.Driver) string { return strconv.Itoa(d.ID) }),
		table.Text("name", "Nome", func(d models.Driver) string { return d.Name }),
		table.Text("phone", "Telefone", func(d models.Driver) string { return d.Phone }),
		table.Text("license_number", "CNH", func(d models.Driver) string { return d.LicenseNumber }),
		{ID: "actions", Header: "Ações", Cell: func(d models.Driver) template.HTML {
			return actions(
				actionLink(fmt.Sprintf("/drivers/%d/edit", d.ID), "Editar"),
				deleteButton(fmt.Sprintf("/drivers/%d/delete", d.ID), "Excluir o motorista "+d.Name+"?"),
			)
		}},
	}

	fetch := func(ctx context.Context, q table.Query) (*models.Page[models.Driver], error) {
		return api.ListDrivers(ctx, q.Page, q.PageSize, q.Search)
	}

	return table.NewView(table.Config{Endpoint: "/drivers/table"}, columns, fetch)
}

// Drivers список водителей
func (h *Handler) Drivers(c *gin.Context) {
	page := views.NewPage("Motoristas", c.Request.URL.Path)
	page.Content = entityLinks{NewHref: "/drivers/new", NewLabel: "Cadastrar motorista"}
	renderTablePage(h, c, h.driverTable, "entities.html", page, "Erro ao carregar motoristas")
}

// DriversTable фрагмент таблицы водителей
func (h *Handler) DriversTable(c *gin.Context) {
	renderTableFragment(c, h.driverTable, "Erro ao carregar motoristas")
}

func driverFormView(f *forms.Form) *views.FormView {
	return views.NewFormView("Cadastrar motorista", "/drivers/new", "Cadastrar", f)
}

// DriverNew форма создания водителя
func (h *Handler) DriverNew(c *gin.Context) {
	page := views.NewPage("Cadastrar motorista", c.Request.URL.Path)
	page.Form = driverFormView(forms.New(forms.MustDescriptors("driver")))
	h.render(c, http.StatusOK, "form.html", page)
}

// DriverCreate проверяет форму и создает водителя
func (h *Handler) DriverCreate(c *gin.Context) {
	page := views.NewPage("Cadastrar motorista", c.Request.URL.Path)

	form := forms.New(forms.MustDescriptors("driver"))
	if err := c.Request.ParseForm(); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	form.Bind(c.Request.PostForm)

	if !form.Validate() {
		page.Form = driverFormView(form)
		h.render(c, http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	in := models.DriverInput{
		Name:          form.String("name"),
		Phone:         form.String("phone"),
		LicenseNumber: form.String("license_number"),
	}
	if _, err := h.api.CreateDriver(c.Request.Context(), in); err != nil {
		toast, ok := failure(c, err, "Erro ao criar motorista!", "Não foi possível cadastrar o motorista")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		page.Toasts = append(page.Toasts, toast)
		page.Form = driverFormView(form)
		h.render(c, failureStatus(err), "form.html", page)
		return
	}

	requestLogger(c).Info("Водитель создан")

	form.Reset()
	page.Form = driverFormView(form)
	page.Dialog = &views.Dialog{Title: "Motorista cadastrado com sucesso!", Href: "/drivers", Button: "Ver motoristas"}
	h.render(c, http.StatusCreated, "form.html", page)
}

// DriverEdit редактирование водителя пока не реализовано
func (h *Handler) DriverEdit(c *gin.Context) {
	h.redirectWithToast(c, "/drivers", flash.Info("Em desenvolvimento", "A edição de motoristas ainda não está disponível"))
}

// DriverDelete удаляет водителя
func (h *Handler) DriverDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	if err := h.api.DeleteDriver(c.Request.Context(), id); err != nil {
		toast, ok := failure(c, err, "Erro ao excluir motorista", "Não foi possível excluir o motorista")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		h.redirectWithToast(c, "/drivers", toast)
		return
	}

	requestLogger(c).WithField("driver_id", id).Info("Водитель удален")
	h.redirectWithToast(c, "/drivers", flash.Success("Motorista excluído com sucesso", ""))
}
