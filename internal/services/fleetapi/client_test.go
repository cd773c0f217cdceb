package fleetapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleet-console/internal/models"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

func TestListControlsSendsPaginationAndSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/control", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"total_items":7,"total_pages":2,"current_page":2,
			"results":[{"id":6,"departure_date":"2023-01-30","return_km":null,
			"vehicle":{"id":1,"plate":"ABC-1234"},"driver":{"id":3,"name":"Ana"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	page, err := client.ListControls(context.Background(), 2, 5, "2023-01")
	require.NoError(t, err)

	assert.Equal(t, "page=2&page_size=5&search=2023-01", gotQuery)
	assert.Equal(t, 7, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "ABC-1234", page.Results[0].Vehicle.Plate)
	assert.Equal(t, 0, page.Results[0].ReturnKm)
}

func TestListVehiclesOmitsEmptySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "page=1&page_size=5", r.URL.RawQuery)
		w.Write([]byte(`{"results":[],"total_items":0,"total_pages":1,"current_page":1}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, time.Second).ListVehicles(context.Background(), 1, 5, "")
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestCreateVehicleExpectsCreated(t *testing.T) {
	var body models.VehicleInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vehicle/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"vehicle":{"id":9,"plate":"ABC-1234","brand":"VW","model":"Gol","oil_change_km":100}}`))
	}))
	defer srv.Close()

	in := models.VehicleInput{Plate: "ABC-1234", Brand: "VW", Model: "Gol", OilChangeKm: 100}
	vehicle, err := NewClient(srv.URL, time.Second).CreateVehicle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, in, body)
	assert.Equal(t, 9, vehicle.ID)
}

func TestUnexpectedStatusCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Missing required fields"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).CreateDriver(context.Background(), models.DriverInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields", Message(err, "fallback"))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestCreateWithOKStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).CreateVehicle(context.Background(), models.VehicleInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusOK, StatusOf(err))
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/control/77", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Control not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetControl(context.Background(), 77)
	assert.True(t, IsNotFound(err))
}

func TestDeleteControlPath(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, time.Second).DeleteControl(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/control/42/delete", path)
}

func TestTotalKmWithoutKmLeft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/control/3/total_km", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Vehicle exceeded the km limit","total_km":1200}`))
	}))
	defer srv.Close()

	check, err := NewClient(srv.URL, time.Second).TotalKm(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, check.KmLeft)
	assert.Equal(t, 1200, check.TotalKm)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).AllDrivers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, UnavailableMessage, Message(err, "fallback"))
	assert.False(t, IsCanceled(err))
}

func TestCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second).AllVehicles(ctx)
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	assert.NotErrorIs(t, err, ErrUnavailable)
}
