// ABOUTME: Rental domain endpoints: vehicles, stations, bookings
// ABOUTME: List envelopes decode into display-ready structs for the dashboards

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Vehicle is a rentable EV as listed by the storefront.
type Vehicle struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Model          string  `json:"model,omitempty"`
	Type           string  `json:"type,omitempty"`
	StationName    string  `json:"station_name,omitempty"`
	PricePerHour   float64 `json:"price_per_hour"`
	BatteryPercent int     `json:"battery_percent"`
	Status         string  `json:"status"`
}

// Available reports whether the vehicle can be booked right now.
func (v Vehicle) Available() bool {
	return v.Status == "available"
}

// StationSummary is an operational location with fleet counts.
type StationSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	VehicleCount int    `json:"vehicle_count"`
	OpenBookings int    `json:"open_bookings"`
}

// Booking is a rental record as returned by the backend.
type Booking struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	VehicleName string  `json:"vehicle_name,omitempty"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time,omitempty"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount,omitempty"`
}

// ListVehicles calls GET /vehicles. Open to guests.
func (c *Client) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := c.getList(ctx, "/vehicles", &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ListStations calls GET /stations.
func (c *Client) ListStations(ctx context.Context) ([]StationSummary, error) {
	var stations []StationSummary
	if err := c.getList(ctx, "/stations", &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// ListBookings calls GET /bookings. Renters see their own bookings;
// staff and admin see the bookings their console covers.
func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.getList(ctx, "/bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking calls POST /bookings for the given vehicle.
func (c *Client) CreateBooking(ctx context.Context, vehicleID string) (*Booking, error) {
	body, err := json.Marshal(map[string]string{"vehicle_id": vehicleID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.handleErrorResponse(resp)
	}

	var env struct {
		Data *Booking `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("invalid response from backend: missing booking")
	}
	return env.Data, nil
}

// getList fetches a GET endpoint whose body is a {data: [...]} envelope.
func (c *Client) getList(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}
