package models

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrReturnKmBeforeDeparture   = errors.New("A quilometragem de retorno não pode ser menor que a de saída")
	ErrReturnDateBeforeDeparture = errors.New("A data de retorno não pode ser menor que a de saída")
)

// Control представляет запись о поездке: водитель, транспорт, выезд и возврат
type Control struct {
	ID               int     `json:"id"`
	DepartureDate    string  `json:"departure_date"`
	DepartureTime    string  `json:"departure_time"`
	DepartureKm      int     `json:"departure_km"`
	Destination      string  `json:"destination"`
	ReturnDate       string  `json:"return_date"`
	ReturnTime       string  `json:"return_time"`
	ReturnKm         int     `json:"return_km"`
	DistanceTraveled int     `json:"distance_traveled"` // Вычисляется на стороне API
	Vehicle          Vehicle `json:"vehicle"`
	Driver           Driver  `json:"driver"`
}

// ControlInput тело запроса на создание и обновление поездки
type ControlInput struct {
	Driver        int    `json:"driver"`
	Vehicle       int    `json:"vehicle"`
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	DepartureKm   int    `json:"departure_km"`
	Destination   string `json:"destination"`
	ReturnDate    string `json:"return_date"`
	ReturnTime    string `json:"return_time"`
	ReturnKm      int    `json:"return_km"`
}

// CheckTrip проверяет согласованность пробега и дат до отправки в API
func (in ControlInput) CheckTrip() error {
	if in.ReturnKm < in.DepartureKm {
		return ErrReturnKmBeforeDeparture
	}

	departure, err := time.Parse(dateLayout, in.DepartureDate)
	if err != nil {
		return fmt.Errorf("departure_date: %w", err)
	}
	ret, err := time.Parse(dateLayout, in.ReturnDate)
	if err != nil {
		return fmt.Errorf("return_date: %w", err)
	}
	if ret.Before(departure) {
		return ErrReturnDateBeforeDeparture
	}

	return nil
}
