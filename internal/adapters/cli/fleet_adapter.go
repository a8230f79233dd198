package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/fleetdesk/internal/ports/primary"
)

func availability(ok bool, yes, no string) string {
	if ok {
		return color.New(color.FgGreen).Sprint(yes)
	}
	return color.New(color.FgRed).Sprint(no)
}

// VehicleAdapter translates CLI operations to LedgerService calls.
type VehicleAdapter struct {
	service primary.LedgerService
	out     io.Writer
}

// NewVehicleAdapter creates a new VehicleAdapter.
func NewVehicleAdapter(service primary.LedgerService, out io.Writer) *VehicleAdapter {
	return &VehicleAdapter{service: service, out: out}
}

// Register adds a vehicle to the fleet.
func (a *VehicleAdapter) Register(ctx context.Context, req primary.RegisterVehicleRequest) error {
	v, err := a.service.RegisterVehicle(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered vehicle %s (%s)\n", v.ID, v.Registration)
	return nil
}

// List lists vehicles and their availability.
func (a *VehicleAdapter) List(ctx context.Context, availableOnly bool) error {
	vehicles, err := a.service.ListVehicles(ctx, availableOnly)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Fprintln(a.out, "No vehicles found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-10s %-20s %8s  %s\n", "ID", "REG", "MODEL", "KG", "STATUS")
	fmt.Fprintln(a.out, rule)
	for _, v := range vehicles {
		model := v.Make
		if v.Model != "" {
			model += " " + v.Model
		}
		fmt.Fprintf(a.out, "%-9s %-10s %-20s %8d  %s\n", v.ID, v.Registration, orDash(model), v.CapacityKg,
			availability(v.Available, "available", "reserved"))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Count prints how many vehicles are free.
func (a *VehicleAdapter) Count(ctx context.Context) error {
	n, err := a.service.CountAvailable(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d vehicle(s) available\n", n)
	return nil
}

// Show displays one vehicle.
func (a *VehicleAdapter) Show(ctx context.Context, vehicleID string) error {
	v, err := a.service.GetVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nVehicle:  %s\n", v.ID)
	fmt.Fprintf(a.out, "Reg:      %s\n", v.Registration)
	fmt.Fprintf(a.out, "Make:     %s %s\n", orDash(v.Make), v.Model)
	fmt.Fprintf(a.out, "Capacity: %d kg\n", v.CapacityKg)
	fmt.Fprintf(a.out, "Status:   %s\n\n", availability(v.Available, "available", "reserved"))
	return nil
}

// DirectoryAdapter translates CLI operations to DirectoryService calls.
type DirectoryAdapter struct {
	service primary.DirectoryService
	out     io.Writer
}

// NewDirectoryAdapter creates a new DirectoryAdapter.
func NewDirectoryAdapter(service primary.DirectoryService, out io.Writer) *DirectoryAdapter {
	return &DirectoryAdapter{service: service, out: out}
}

// RegisterDriver adds a driver.
func (a *DirectoryAdapter) RegisterDriver(ctx context.Context, req primary.RegisterDriverRequest) error {
	d, err := a.service.RegisterDriver(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered driver %s: %s %s\n", d.ID, d.FirstName, d.LastName)
	return nil
}

// ListDrivers lists drivers with their duty status.
func (a *DirectoryAdapter) ListDrivers(ctx context.Context, activeOnly bool) error {
	drivers, err := a.service.ListDrivers(ctx, activeOnly)
	if err != nil {
		return err
	}
	if len(drivers) == 0 {
		fmt.Fprintln(a.out, "No drivers found")
		return nil
	}
	fmt.Fprintf(a.out, "\n%-9s %-28s %s\n", "ID", "NAME", "STATUS")
	fmt.Fprintln(a.out, rule)
	for _, d := range drivers {
		fmt.Fprintf(a.out, "%-9s %-28s %s\n", d.ID, d.FirstName+" "+d.LastName, availability(d.Active, "active", "inactive"))
	}
	fmt.Fprintln(a.out)
	return nil
}

// ReactivateDriver puts a driver back on duty.
func (a *DirectoryAdapter) ReactivateDriver(ctx context.Context, driverID string) error {
	d, err := a.service.ReactivateDriver(ctx, driverID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Driver %s is active again\n", d.ID)
	return nil
}

// RegisterEmployee adds a requester.
func (a *DirectoryAdapter) RegisterEmployee(ctx context.Context, req primary.RegisterEmployeeRequest) error {
	e, err := a.service.RegisterEmployee(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered employee %s: %s %s\n", e.ID, e.FirstName, e.LastName)
	return nil
}

// ListEmployees lists requesters.
func (a *DirectoryAdapter) ListEmployees(ctx context.Context) error {
	employees, err := a.service.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		fmt.Fprintln(a.out, "No employees found")
		return nil
	}
	for _, e := range employees {
		fmt.Fprintf(a.out, "%-9s %s %s  %s\n", e.ID, e.FirstName, e.LastName, e.Department)
	}
	return nil
}

// RegisterDispatcher adds a dispatcher.
func (a *DirectoryAdapter) RegisterDispatcher(ctx context.Context, req primary.RegisterDispatcherRequest) error {
	d, err := a.service.RegisterDispatcher(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered dispatcher %s: %s <%s>\n", d.ID, d.Name, d.Email)
	return nil
}

// ListDispatchers lists dispatchers.
func (a *DirectoryAdapter) ListDispatchers(ctx context.Context) error {
	dispatchers, err := a.service.ListDispatchers(ctx)
	if err != nil {
		return err
	}
	if len(dispatchers) == 0 {
		fmt.Fprintln(a.out, "No dispatchers found")
		return nil
	}
	for _, d := range dispatchers {
		fmt.Fprintf(a.out, "%-9s %s <%s>\n", d.ID, d.Name, d.Email)
	}
	return nil
}
