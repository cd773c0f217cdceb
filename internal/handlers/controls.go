package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"fleet-console/internal/forms"
	"fleet-console/internal/models"
	"fleet-console/internal/services"
	"fleet-console/internal/services/flash"
	"fleet-console/internal/services/fleetapi"
	"fleet-console/internal/table"
	"fleet-console/internal/utils"
	"fleet-console/internal/views"

	"github.com/gin-gonic/gin"
)

const controlSearchPlaceholder = "Pesquise pela a data ex: 2023-01-30"

func km(n int) string {
	return utils.FormatNumber(n) + " km"
}

func newControlTable(api FleetAPI) *table.View[models.Control] {
	columns := []table.Column[models.Control]{
		table.Text("id", "ID", func(c models.Control) string { return strconv.Itoa(c.ID) }),
		table.Text("driver", "Motorista", func(c models.Control) string { return c.Driver.Name }),
		table.Text("vehicle", "Veículo", func(c models.Control) string { return c.Vehicle.Plate }),
		table.Text("departure_date", "Data de saída", func(c models.Control) string { return utils.FormatDate(c.DepartureDate) }),
		table.Text("departure_time", "Hora de saída", func(c models.Control) string { return c.DepartureTime }),
		table.Text("departure_km", "Km de saída", func(c models.Control) string { return km(c.DepartureKm) }),
		table.Text("return_date", "Data de retorno", func(c models.Control) string { return utils.FormatDate(c.ReturnDate) }),
		table.Text("return_time", "Hora de retorno", func(c models.Control) string { return c.ReturnTime }),
		table.Text("return_km", "Km de retorno", func(c models.Control) string { return km(c.ReturnKm) }),
		table.Text("destination", "Destino", func(c models.Control) string { return c.Destination }),
		table.Text("distance_traveled", "Distância", func(c models.Control) string { return km(c.DistanceTraveled) }),
		{ID: "actions", Header: "Ações", Cell: func(c models.Control) template.HTML {
			return actions(
				fmt.Sprintf(`<button type="button" class="button-outline" data-detail="%d">Detalhes</button>`, c.ID),
				actionLink(fmt.Sprintf("/control/%d/edit", c.ID), "Editar"),
				actionLink(fmt.Sprintf("/control/%d/delete", c.ID), "Excluir"),
			)
		}},
	}

	fetch := func(ctx context.Context, q table.Query) (*models.Page[models.Control], error) {
		return api.ListControls(ctx, q.Page, q.PageSize, q.Search)
	}

	return table.NewView(table.Config{
		Endpoint:          "/control/table",
		Searchable:        true,
		SearchPlaceholder: controlSearchPlaceholder,
	}, columns, fetch)
}

// Controls главная страница со списком поездок
func (h *Handler) Controls(c *gin.Context) {
	page := views.NewPage("Controle de viagens", c.Request.URL.Path)
	renderTablePage(h, c, h.controlTable, "controls.html", page, "Erro ao carregar controles")
}

// ControlsTable фрагмент таблицы поездок
func (h *Handler) ControlsTable(c *gin.Context) {
	renderTableFragment(c, h.controlTable, "Erro ao carregar controles")
}

func controlForm(data *services.ControlFormData) *forms.Form {
	form := forms.New(forms.MustDescriptors("control"))

	drivers := make([]forms.Option, 0, len(data.Drivers))
	for _, d := range data.Drivers {
		drivers = append(drivers, forms.Option{Value: strconv.Itoa(d.ID), Label: d.Name})
	}
	vehicles := make([]forms.Option, 0, len(data.Vehicles))
	for _, v := range data.Vehicles {
		vehicles = append(vehicles, forms.Option{Value: strconv.Itoa(v.ID), Label: fmt.Sprintf("%s - %s %s", v.Plate, v.Brand, v.Model)})
	}

	form.SetOptions("driver_id", drivers)
	form.SetOptions("vehicle_id", vehicles)
	return form
}

func fillControlForm(form *forms.Form, control models.Control) {
	form.Set("driver_id", strconv.Itoa(control.Driver.ID))
	form.Set("vehicle_id", strconv.Itoa(control.Vehicle.ID))
	form.Set("departure_date", control.DepartureDate)
	form.Set("departure_time", control.DepartureTime)
	form.Set("departure_km", strconv.Itoa(control.DepartureKm))
	form.Set("return_date", control.ReturnDate)
	form.Set("return_time", control.ReturnTime)
	form.Set("return_km", strconv.Itoa(control.ReturnKm))
	form.Set("destination", control.Destination)
}

func controlInput(form *forms.Form) models.ControlInput {
	return models.ControlInput{
		Driver:        form.Int("driver_id"),
		Vehicle:       form.Int("vehicle_id"),
		DepartureDate: form.String("departure_date"),
		DepartureTime: form.String("departure_time"),
		DepartureKm:   form.Int("departure_km"),
		ReturnDate:    form.String("return_date"),
		ReturnTime:    form.String("return_time"),
		ReturnKm:      form.Int("return_km"),
		Destination:   form.String("destination"),
	}
}

// tripRuleToast уведомление о нарушении правил поездки
func tripRuleToast(err error) flash.Toast {
	if errors.Is(err, models.ErrReturnKmBeforeDeparture) || errors.Is(err, models.ErrReturnDateBeforeDeparture) {
		return flash.Failure("Erro", err.Error())
	}
	return flash.Failure("Erro", "Verifique as datas informadas")
}

func oilWarning(detail services.ControlDetail) string {
	if detail.Overdue() {
		return fmt.Sprintf("Troca de óleo vencida! O veículo %s passou %s do limite.", detail.Control.Vehicle.Plate, km(-detail.KmLeft()))
	}
	return fmt.Sprintf("Atenção: faltam %s para a troca de óleo do veículo %s.", km(detail.KmLeft()), detail.Control.Vehicle.Plate)
}

func controlCreateView(form *forms.Form) *views.FormView {
	return views.NewFormView("Registrar controle de viagem", "/control/new", "Registrar", form)
}

// loadControlForm загружает справочники формы; при ошибке ответ уже отправлен
func (h *Handler) loadControlForm(c *gin.Context) (*forms.Form, bool) {
	data, err := h.controls.FormData(c.Request.Context())
	if err != nil {
		toast, ok := failure(c, err, "Erro", "Não foi possível carregar motoristas e veículos")
		if !ok {
			c.Status(statusClientClosed)
			return nil, false
		}
		h.redirectWithToast(c, "/", toast)
		return nil, false
	}
	return controlForm(data), true
}

// ControlNew форма регистрации поездки
func (h *Handler) ControlNew(c *gin.Context) {
	form, ok := h.loadControlForm(c)
	if !ok {
		return
	}
	page := views.NewPage("Registrar controle de viagem", c.Request.URL.Path)
	page.Form = controlCreateView(form)
	h.render(c, http.StatusOK, "form.html", page)
}

// ControlCreate проверяет форму и правила поездки, затем регистрирует поездку
func (h *Handler) ControlCreate(c *gin.Context) {
	form, ok := h.loadControlForm(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	form.Bind(c.Request.PostForm)

	page := views.NewPage("Registrar controle de viagem", c.Request.URL.Path)

	valid := form.Validate()
	page.Form = controlCreateView(form)
	if !valid {
		h.render(c, http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	in := controlInput(form)
	if err := in.CheckTrip(); err != nil {
		page.Toasts = append(page.Toasts, tripRuleToast(err))
		h.render(c, http.StatusUnprocessableEntity, "form.html", page)
		return
	}

	if _, err := h.api.CreateControl(c.Request.Context(), in); err != nil {
		toast, ok := failure(c, err, "Erro", "Ocorreu um erro ao registrar o controle de viagem")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		page.Toasts = append(page.Toasts, toast)
		h.render(c, failureStatus(err), "form.html", page)
		return
	}

	requestLogger(c).WithField("vehicle_id", in.Vehicle).Info("Поездка зарегистрирована")

	form.Reset()
	page.Form = controlCreateView(form)
	page.Dialog = &views.Dialog{Title: "Controle de viagem registrado com sucesso!", Href: "/", Button: "Ver controles"}
	h.render(c, http.StatusCreated, "form.html", page)
}

func controlEditView(id int, form *forms.Form) *views.FormView {
	return views.NewFormView(fmt.Sprintf("Editar controle #%d", id), fmt.Sprintf("/control/%d/edit", id), "Salvar", form)
}

// loadControlEdit загружает поездку со справочниками; при ошибке ответ уже отправлен
func (h *Handler) loadControlEdit(c *gin.Context, id int) (*services.ControlEditData, bool) {
	data, err := h.controls.EditData(c.Request.Context(), id)
	if err == nil {
		return data, true
	}

	if fleetapi.IsNotFound(err) {
		h.NotFound(c)
		return nil, false
	}
	toast, ok := failure(c, err, "Erro", "Não foi possível carregar o controle")
	if !ok {
		c.Status(statusClientClosed)
		return nil, false
	}
	h.redirectWithToast(c, "/", toast)
	return nil, false
}

// controlEditPage страница редактирования с предупреждением о замене масла и ссылкой на удаление
func controlEditPage(c *gin.Context, id int, form *forms.Form, data *services.ControlEditData) *views.Page {
	page := views.NewPage(fmt.Sprintf("Editar controle #%d", id), c.Request.URL.Path)
	page.Form = controlEditView(id, form)
	if data.OilWarning() {
		page.Form.Warning = oilWarning(data.ControlDetail)
	}
	page.Content = data
	return page
}

// ControlEdit форма редактирования поездки с предупреждением о замене масла
func (h *Handler) ControlEdit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	data, ok := h.loadControlEdit(c, id)
	if !ok {
		return
	}

	form := controlForm(&data.ControlFormData)
	fillControlForm(form, data.Control)

	h.render(c, http.StatusOK, "control_edit.html", controlEditPage(c, id, form, data))
}

// ControlUpdate проверяет форму и правила поездки, затем обновляет поездку
func (h *Handler) ControlUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	data, ok := h.loadControlEdit(c, id)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	form := controlForm(&data.ControlFormData)
	form.Bind(c.Request.PostForm)

	if !form.Validate() {
		h.render(c, http.StatusUnprocessableEntity, "control_edit.html", controlEditPage(c, id, form, data))
		return
	}

	in := controlInput(form)
	if err := in.CheckTrip(); err != nil {
		page := controlEditPage(c, id, form, data)
		page.Toasts = append(page.Toasts, tripRuleToast(err))
		h.render(c, http.StatusUnprocessableEntity, "control_edit.html", page)
		return
	}

	if err := h.api.UpdateControl(c.Request.Context(), id, in); err != nil {
		toast, ok := failure(c, err, "Erro", "Ocorreu um erro ao atualizar o controle de viagem")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		page := controlEditPage(c, id, form, data)
		page.Toasts = append(page.Toasts, toast)
		h.render(c, failureStatus(err), "control_edit.html", page)
		return
	}

	requestLogger(c).WithField("control_id", id).Info("Поездка обновлена")
	h.redirectWithToast(c, "/", flash.Success("Controle atualizado com sucesso", ""))
}

// ControlDetails фрагмент боковой панели поездки
func (h *Handler) ControlDetails(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "control_detail.html", views.Fragment{
			Toasts: []flash.Toast{flash.Failure("Erro", "Controle não encontrado")},
		})
		return
	}

	detail, err := h.controls.Detail(c.Request.Context(), id)
	if err != nil {
		toast, ok := failure(c, err, "Erro", "Não foi possível carregar o controle")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		c.HTML(failureStatus(err), "control_detail.html", views.Fragment{Toasts: []flash.Toast{toast}})
		return
	}

	c.HTML(http.StatusOK, "control_detail.html", views.Fragment{Content: detail})
}

// ControlDeleteConfirm страница подтверждения удаления поездки
func (h *Handler) ControlDeleteConfirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	control, err := h.api.GetControl(c.Request.Context(), id)
	if err != nil {
		if fleetapi.IsNotFound(err) {
			h.NotFound(c)
			return
		}
		toast, ok := failure(c, err, "Erro", "Não foi possível carregar o controle")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		h.redirectWithToast(c, "/", toast)
		return
	}

	page := views.NewPage(fmt.Sprintf("Excluir controle #%d", id), c.Request.URL.Path)
	page.Content = control
	h.render(c, http.StatusOK, "control_delete.html", page)
}

// ControlDelete удаляет поездку и возвращает на главную, где список загружается с первой страницы
func (h *Handler) ControlDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.NotFound(c)
		return
	}

	if err := h.api.DeleteControl(c.Request.Context(), id); err != nil {
		toast, ok := failure(c, err, "Erro ao excluir controle", "Não foi possível excluir o controle")
		if !ok {
			c.Status(statusClientClosed)
			return
		}
		h.redirectWithToast(c, "/", toast)
		return
	}

	requestLogger(c).WithField("control_id", id).Info("Поездка удалена")
	h.redirectWithToast(c, "/", flash.Success("Controle excluído com sucesso", ""))
}
