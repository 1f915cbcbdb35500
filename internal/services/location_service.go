package services

import (
	"context"
	"strings"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

// locationAPI son las operaciones de sucursales del API remoto
type locationAPI interface {
	GetLocations(ctx context.Context) ([]models.Location, error)
	GetTrashedLocations(ctx context.Context) ([]models.Location, error)
	AddLocation(ctx context.Context, name string) (*models.Location, error)
	UpdateLocation(ctx context.Context, id int, name string) error
	DeleteLocation(ctx context.Context, id int) error
	RestoreLocation(ctx context.Context, id int) error
	PermanentlyDeleteLocation(ctx context.Context, id int) error
}

// LocationService administra las sucursales reales. La bodega central (id 0)
// es sintética: existe en todos los desplegables pero no se puede mutar.
type LocationService interface {
	List(ctx context.Context) ([]models.Location, error)
	Trashed(ctx context.Context) ([]models.Location, error)
	Add(ctx context.Context, name string) (*models.Location, error)
	Rename(ctx context.Context, id int, name string) error
	Trash(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	PermanentlyDelete(ctx context.Context, id int) error
}

// locationService implementa LocationService
type locationService struct {
	api    locationAPI
	store  *cache.SnapshotStore
	events Broadcaster
	logger *zap.Logger
}

// NewLocationService crea una nueva instancia del servicio
func NewLocationService(api locationAPI, store *cache.SnapshotStore, events Broadcaster, logger *zap.Logger) LocationService {
	return &locationService{
		api:    api,
		store:  store,
		events: events,
		logger: logger,
	}
}

// List retorna las sucursales activas, servidas desde el caché. Los
// traspasos no invalidan esta lista; solo las mutaciones de sucursal.
func (s *locationService) List(ctx context.Context) ([]models.Location, error) {
	return s.store.GetLocations(ctx, s.api.GetLocations)
}

// Trashed retorna las sucursales en papelera, siempre frescas del servidor
func (s *locationService) Trashed(ctx context.Context) ([]models.Location, error) {
	return s.api.GetTrashedLocations(ctx)
}

// Add crea una sucursal nueva
func (s *locationService) Add(ctx context.Context, name string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "branch name is required"}
	}

	location, err := s.api.AddLocation(ctx, name)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("Branch created", zap.String("name", name))
	return location, nil
}

// Rename cambia el nombre de una sucursal existente
func (s *locationService) Rename(ctx context.Context, id int, name string) error {
	if err := s.guardReal(id); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "branch name is required"}
	}

	if err := s.api.UpdateLocation(ctx, id, name); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("Branch renamed", zap.Int("location_id", id), zap.String("name", name))
	return nil
}

// Trash manda una sucursal a la papelera (borrado blando)
func (s *locationService) Trash(ctx context.Context, id int) error {
	if err := s.guardReal(id); err != nil {
		return err
	}
	if err := s.api.DeleteLocation(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("Branch trashed", zap.Int("location_id", id))
	return nil
}

// Restore recupera una sucursal desde la papelera
func (s *locationService) Restore(ctx context.Context, id int) error {
	if err := s.guardReal(id); err != nil {
		return err
	}
	if err := s.api.RestoreLocation(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("Branch restored", zap.Int("location_id", id))
	return nil
}

// PermanentlyDelete elimina definitivamente una sucursal en papelera
func (s *locationService) PermanentlyDelete(ctx context.Context, id int) error {
	if err := s.guardReal(id); err != nil {
		return err
	}
	if err := s.api.PermanentlyDeleteLocation(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("Branch permanently deleted", zap.Int("location_id", id))
	return nil
}

// guardReal rechaza mutaciones contra la bodega central sintética
func (s *locationService) guardReal(id int) error {
	if id == models.MainWarehouseID {
		return &ValidationError{Field: "id", Message: "main warehouse is not a real branch and cannot be modified"}
	}
	return nil
}

func (s *locationService) invalidate(ctx context.Context) {
	s.store.InvalidateLocations(ctx)
	if s.events != nil {
		s.events.Broadcast("locations_invalidated", nil)
	}
}
