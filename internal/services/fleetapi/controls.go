package fleetapi

import (
	"context"
	"fmt"
	"net/http"

	"fleet-console/internal/models"
)

// ListControls возвращает страницу поездок; search фильтрует по дате выезда или возврата
func (c *Client) ListControls(ctx context.Context, page, pageSize int, search string) (*models.Page[models.Control], error) {
	var result models.Page[models.Control]
	if err := c.call(ctx, "control.list", http.MethodGet, "/control", pageQuery(page, pageSize, search), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetControl возвращает поездку по идентификатору
func (c *Client) GetControl(ctx context.Context, id int) (*models.Control, error) {
	var result struct {
		Control models.Control `json:"control"`
	}
	if err := c.call(ctx, "control.get", http.MethodGet, fmt.Sprintf("/control/%d", id), nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result.Control, nil
}

// CreateControl регистрирует поездку
func (c *Client) CreateControl(ctx context.Context, in models.ControlInput) (*models.Control, error) {
	var result struct {
		Control models.Control `json:"control"`
	}
	if err := c.call(ctx, "control.create", http.MethodPost, "/control/create", nil, in, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result.Control, nil
}

// UpdateControl обновляет поездку
func (c *Client) UpdateControl(ctx context.Context, id int, in models.ControlInput) error {
	return c.call(ctx, "control.update", http.MethodPut, fmt.Sprintf("/control/%d/update", id), nil, in, http.StatusOK, nil)
}

// DeleteControl удаляет поездку
func (c *Client) DeleteControl(ctx context.Context, id int) error {
	return c.call(ctx, "control.delete", http.MethodDelete, fmt.Sprintf("/control/%d/delete", id), nil, nil, http.StatusOK, nil)
}

// TotalKm возвращает суммарный пробег транспортного средства и остаток до замены масла
func (c *Client) TotalKm(ctx context.Context, vehicleID int) (*models.CheckKm, error) {
	var result models.CheckKm
	if err := c.call(ctx, "control.total_km", http.MethodGet, fmt.Sprintf("/control/%d/total_km", vehicleID), nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
