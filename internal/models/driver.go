package models

// Driver представляет водителя автопарка
type Driver struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

// DriverInput тело запроса на создание водителя
type DriverInput struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}
