// ABOUTME: Console snapshot aggregation for the staff and admin dashboards
// ABOUTME: Fetches vehicles, stations, and bookings concurrently

package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ConsoleSnapshot aggregates the lists the operations consoles display.
type ConsoleSnapshot struct {
	Vehicles []Vehicle
	Stations []StationSummary
	Bookings []Booking
}

// FetchConsoleSnapshot loads all console data in parallel. Any single
// failure fails the snapshot; the consoles show the error and offer a
// manual refresh.
func (c *Client) FetchConsoleSnapshot(ctx context.Context) (*ConsoleSnapshot, error) {
	var snap ConsoleSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vehicles, err := c.ListVehicles(gctx)
		if err != nil {
			return err
		}
		snap.Vehicles = vehicles
		return nil
	})
	g.Go(func() error {
		stations, err := c.ListStations(gctx)
		if err != nil {
			return err
		}
		snap.Stations = stations
		return nil
	})
	g.Go(func() error {
		bookings, err := c.ListBookings(gctx)
		if err != nil {
			return err
		}
		snap.Bookings = bookings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
