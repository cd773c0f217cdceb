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
	"fleet-console/internal/utils"
	"fleet-console/internal/views"

	"github.com/gin-gonic/gin"
)

func newVehicleTable(api FleetAPI) *table.View[models.Vehicle] {
	columns := []table.Column[models.Vehicle]{
		table.Text("id", "ID", func(v models.Vehicle) string { return strconv.Itoa(v.ID) }),
		table.Text("plate", "Placa", func(v models.Vehicle) string { return v.Plate }),
		table.Text("brand", "Marca", func(v models.Vehicle) string { return v.Brand }),
		table.Text("model", "Modelo", func(v models.Vehicle) string { return v.Model }),
		table.Text("oil_change_km", "Troca de óleo", func(v models.Vehicle) string {
			return utils.FormatNumber(v.OilChangeKm) + " km"
		}),
		{ID: "actions", Header: "Ações", Cell: func(v models.Vehicle) template.HTML {
			return actions(
				actionLink(fmt.Sprintf("/vehicles/%d/edit", v.ID), "Editar"),
				deleteButton(fmt.Sprintf("/vehicles/%d/delete", v.ID), "Excluir o veículo "+v.Plate+"?"),
			)
		}},
	}

	fetch := func(ctx context.Context, q table.Query) (*models.Page[models.Vehicle], error) {
		return api.ListVehicles(ctx, q.Page, q.PageSize, q.Search)
	}

	return table.NewView(table.Config{Endpoint: "/vehicles/table"}, columns, fetch)
}

type entityLinks struct {
	NewHref  string
	NewLabel string
}

// Vehicles список транспортных средств
func (h *Handler) Vehicles(c *gin.Context) {
	page := views.NewPage("Veículos", c.Request.URL.Path)
	page.Content = entityLinks{NewHref: "/vehicles/new", NewLabel: "Cadastrar veículo"}
	renderTablePage(h, c, h.vehicleTable, "entities.html", page, "Erro ao carregar veículos")
}

// VehiclesTable фрагмент таблицы транспортных средств
func (h *Handler) VehiclesTable(c *gin.Context) {
	renderTableFragment(c, h.vehicleTable, "Erro ao carregar veículos")
}

func vehicleFormView(f *forms.Form) *views.FormView {
	return views.NewFormView("Cadastrar veículo", "/vehicles/new", "Cadastrar", f)
}

// VehicleNew форма создания транспортного средства
func (h *Handler) VehicleNew(c *gin.Context) {
	page := views.NewPage("Cadastrar veículo", c.Request.URL.Path)
	page.Form = vehicleFormView(forms.New(forms.MustDescriptors("vehicle")))
	h.render(c, http.StatusOK, "form.html", page)
}

// VehicleCreate проверяет форму и создает транспортное средство
func (h *Handler) VehicleCreate(c *gin.Context) {
	page := views.NewPage("Cadastrar veículo", c.Request.URL.Path)

	form := forms.New(forms.MustDescriptors("vehicle"))
	if err := c.Request.ParseForm(); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	form.Bind(c.Request.PostForm)

	if !form.Validate() {
		page.Form = vehicleFormView(form)
		h.render(c, http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	in := models.VehicleInput{
		Plate:       form.String("plate"),
		Brand:       form.String("brand"),
		Model:       form.String("model"),
		OilChangeKm: form.Int("oil_change_km"),
	}
	if _, err := h.api.CreateVehicle(c.Request.Context(), in); err != nil {
		toast, ok := failure(c, err, "Erro ao criar veículo", "Não foi possível cadastrar o veículo")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		page.Toasts = append(page.Toasts, toast)
		page.Form = vehicleFormView(form)
		h.render(c, failureStatus(err), "form.html", page)
		return
	}

	requestLogger(c).WithField("plate", in.Plate).Info("Транспортное средство создано")

	form.Reset()
	page.Form = vehicleFormView(form)
	page.Dialog = &views.Dialog{Title: "Veículo cadastrado com sucesso!", Href: "/vehicles", Button: "Ver veículos"}
	h.render(c, http.StatusCreated, "form.html", page)
}

// VehicleEdit редактирование транспорта пока не реализовано
func (h *Handler) VehicleEdit(c *gin.Context) {
	h.redirectWithToast(c, "/vehicles", flash.Info("Em desenvolvimento", "A edição de veículos ainda não está disponível"))
}

// VehicleDelete удаляет транспортное средство
func (h *Handler) VehicleDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	if err := h.api.DeleteVehicle(c.Request.Context(), id); err != nil {
		toast, ok := failure(c, err, "Erro ao excluir veículo", "Não foi possível excluir o veículo")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		h.redirectWithToast(c, "/vehicles", toast)
		return
	}

	requestLogger(c).WithField("vehicle_id", id).Info("Транспортное средство удалено")
	h.redirectWithToast(c, "/vehicles", flash.Success("Veículo excluído com sucesso", ""))
}
