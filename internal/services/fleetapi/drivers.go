package fleetapi

import (
	"context"
	"fmt"
	"net/http"

	"fleet-console/internal/models"
)

// ListDrivers возвращает страницу водителей
func (c *Client) ListDrivers(ctx context.Context, page, pageSize int, search string) (*models.Page[models.Driver], error) {
	var result models.Page[models.Driver]
	if err := c.call(ctx, "driver.list", http.MethodGet, "/driver", pageQuery(page, pageSize, search), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AllDrivers возвращает всех водителей без пагинации
func (c *Client) AllDrivers(ctx context.Context) ([]models.Driver, error) {
	var result struct {
		Results []models.Driver `json:"results"`
	}
	if err := c.call(ctx, "driver.all", http.MethodGet, "/driver/all", nil, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// CreateDriver регистрирует водителя
func (c *Client) CreateDriver(ctx context.Context, in models.DriverInput) (*models.Driver, error) {
	var result struct {
		Driver models.Driver `json:"driver"`
	}
	if err := c.call(ctx, "driver.create", http.MethodPost, "/driver/create", nil, in, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result.Driver, nil
}

// DeleteDriver удаляет водителя
func (c *Client) DeleteDriver(ctx context.Context, id int) error {
	return c.call(ctx, "driver.delete", http.MethodDelete, fmt.Sprintf("/driver/%d/delete", id), nil, nil, http.StatusOK, nil)
}
