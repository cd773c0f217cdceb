package fleetapi

import (
	"context"
	"fmt"
	"net/http"

	"fleet-console/internal/models"
)

// ListVehicles возвращает страницу транспортных средств
func (c *Client) ListVehicles(ctx context.Context, page, pageSize int, search string) (*models.Page[models.Vehicle], error) {
	var result models.Page[models.Vehicle]
	if err := c.call(ctx, "vehicle.list", http.MethodGet, "/vehicle", pageQuery(page, pageSize, search), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AllVehicles возвращает все транспортные средства без пагинации
func (c *Client) AllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var result struct {
		Results []models.Vehicle `json:"results"`
	}
	if err := c.call(ctx, "vehicle.all", http.MethodGet, "/vehicle/all", nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// CreateVehicle регистрирует транспортное средство
func (c *Client) CreateVehicle(ctx context.Context, in models.VehicleInput) (*models.Vehicle, error) {
	var result struct {
		Vehicle models.Vehicle `json:"vehicle"`
	}
	if err := c.call(ctx, "vehicle.create", http.MethodPost, "/vehicle/create", nil, in, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result.Vehicle, nil
}

// DeleteVehicle удаляет транспортное средство
func (c *Client) DeleteVehicle(ctx context.Context, id int) error {
	return c.call(ctx, "vehicle.delete", http.MethodDelete, fmt.Sprintf("/vehicle/%d/delete", id), nil, nil, http.StatusOK, nil)
}
