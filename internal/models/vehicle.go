package models

// Vehicle представляет транспортное средство автопарка
type Vehicle struct {
	ID          int    `json:"id"`
	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	OilChangeKm int    `json:"oil_change_km"` // Пробег, после которого нужна замена масла
}

// VehicleInput тело запроса на создание транспортного средства
type VehicleInput struct {
	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	OilChangeKm int    `json:"oil_change_km"`
}
