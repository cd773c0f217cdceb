package models

// Page конверт ответа списочных эндпоинтов API автопарка
type Page[T any] struct {
	Results     []T `json:"results"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// OilChangeWarningKm порог, ниже которого форма редактирования предупреждает о замене масла
const OilChangeWarningKm = 100

// CheckKm ответ /control/:vehicle_id/total_km
type CheckKm struct {
	KmLeft  *int   `json:"km_left"`
	TotalKm int    `json:"total_km"`
	Message string `json:"message,omitempty"`
}

// Remaining возвращает остаток километров до замены масла.
// API не присылает km_left, когда порог уже превышен, поэтому остаток
// вычисляется по снимку транспортного средства.
func (c CheckKm) Remaining(v Vehicle) int {
	if c.KmLeft != nil {
		return *c.KmLeft
	}
	return v.OilChangeKm - c.TotalKm
}

// Overdue сообщает, что замена масла просрочена
func (c CheckKm) Overdue(v Vehicle) bool {
	return c.Remaining(v) < 0
}

// NearOilChange сообщает, что до замены масла осталось меньше OilChangeWarningKm
func (c CheckKm) NearOilChange(v Vehicle) bool {
	return c.Remaining(v) < OilChangeWarningKm
}
