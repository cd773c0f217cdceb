package services

import (
	"context"
	"fmt"

	"fleet-console/internal/models"
	"fleet-console/internal/utils"
)

// ControlAPI вызовы API автопарка, нужные карточке и форме поездки
type ControlAPI interface {
	GetControl(ctx context.Context, id int) (*models.Control, error)
	TotalKm(ctx context.Context, vehicleID int) (*models.CheckKm, error)
	AllDrivers(ctx context.Context) ([]models.Driver, error)
	AllVehicles(ctx context.Context) ([]models.Vehicle, error)
}

// ControlService собирает данные поездки из нескольких вызовов API
type ControlService struct {
	api ControlAPI
}

// NewControlService создает сервис поездок
func NewControlService(api ControlAPI) *ControlService {
	return &ControlService{api: api}
}

// ControlDetail поездка вместе с состоянием замены масла ее транспорта
type ControlDetail struct {
	Control models.Control
	Check   models.CheckKm
}

// KmLeft остаток до замены масла
func (d ControlDetail) KmLeft() int {
	return d.Check.Remaining(d.Control.Vehicle)
}

// Overdue замена масла просрочена
func (d ControlDetail) Overdue() bool {
	return d.Check.Overdue(d.Control.Vehicle)
}

// Banner текст плашки о замене масла
func (d ControlDetail) Banner() string {
	if d.Overdue() {
		return "Troca de óleo vencida"
	}
	return fmt.Sprintf("Troca de óleo em %s km", utils.FormatNumber(d.KmLeft()))
}

// Detail загружает поездку, затем проверку пробега ее транспорта.
// Вызовы последовательны: второй зависит от первого и не выполняется,
// если контекст запроса уже отменен.
func (s *ControlService) Detail(ctx context.Context, id int) (*ControlDetail, error) {
	control, err := s.api.GetControl(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки поездки %d: %w", id, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("загрузка поездки %d прервана: %w", id, err)
	}

	check, err := s.api.TotalKm(ctx, control.Vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пробега транспорта %d: %w", control.Vehicle.ID, err)
	}

	return &ControlDetail{Control: *control, Check: *check}, nil
}

// ControlFormData справочники для формы поездки
type ControlFormData struct {
	Drivers  []models.Driver
	Vehicles []models.Vehicle
}

// FormData загружает всех водителей и все транспортные средства
func (s *ControlService) FormData(ctx context.Context) (*ControlFormData, error) {
	drivers, err := s.api.AllDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки водителей: %w", err)
	}
	vehicles, err := s.api.AllVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки транспорта: %w", err)
	}
	return &ControlFormData{Drivers: drivers, Vehicles: vehicles}, nil
}

// ControlEditData данные формы редактирования поездки
type ControlEditData struct {
	ControlFormData
	ControlDetail
}

// OilWarning предупреждение о скорой замене масла
func (d ControlEditData) OilWarning() bool {
	return d.Check.NearOilChange(d.Control.Vehicle)
}

// EditData загружает справочники, поездку и проверку пробега
func (s *ControlService) EditData(ctx context.Context, id int) (*ControlEditData, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	form, err := s.FormData(ctx)
	if err != nil {
		return nil, err
	}
	return &ControlEditData{ControlFormData: *form, ControlDetail: *detail}, nil
}
