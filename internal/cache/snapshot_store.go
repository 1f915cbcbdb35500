package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"inventory-gateway/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	generationKey = "inventory:gen"
	locationsKey  = "locations"
)

// InventoryPage es una página de inventario cacheada
type InventoryPage struct {
	Products   []models.Product   `json:"products"`
	Pagination *models.Pagination `json:"pagination"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

// FetchFunc trae una página fresca del API remoto
type FetchFunc func(ctx context.Context, filters models.InventoryFilters) (*InventoryPage, error)

// LocationsFetchFunc trae la lista fresca de sucursales activas
type LocationsFetchFunc func(ctx context.Context) ([]models.Location, error)

// SnapshotStore mantiene el snapshot de inventario con caché en dos niveles:
// L1 en memoria del proceso y L2 en Redis compartido entre estaciones.
// También es dueño del estado de filtros y de la selección de productos.
//
// La invalidación usa un contador de generación en Redis: invalidar
// incrementa la generación y deja huérfanas todas las páginas cacheadas,
// que expiran solas por TTL. Así un traspaso hecho en otra estación
// invalida también el caché de esta.
type SnapshotStore struct {
	mu        sync.RWMutex
	filters   models.InventoryFilters
	selection map[int]struct{}

	page     *InventoryPage
	pageKey  string
	localGen int64

	locations    []models.Location
	hasLocations bool

	redisClient *redis.Client
	ttl         time.Duration
	logger      *zap.Logger
}

// NewSnapshotStore crea el store. redisClient puede ser nil (sin L2,
// la generación pasa a ser solo local).
func NewSnapshotStore(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		filters:     models.InventoryFilters{Page: 1},
		selection:   make(map[int]struct{}),
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// Filters retorna los filtros vigentes
func (s *SnapshotStore) Filters() models.InventoryFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// ApplyFilters aplica una mutación parcial de filtros y retorna el estado
// resultante. Cualquier cambio que no sea de página resetea la página a 1,
// limpia la selección y descarta la página cacheada; cambiar solo la
// página no toca ninguna de las dos cosas.
func (s *SnapshotStore) ApplyFilters(req models.FilterRequest) models.InventoryFilters {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Page != nil && *req.Page >= 1 {
		s.filters.Page = *req.Page
	}

	structural := false
	if req.Search != nil && *req.Search != s.filters.Search {
		s.filters.Search = *req.Search
		structural = true
	}
	if req.Status != nil && *req.Status != s.filters.Status {
		s.filters.Status = *req.Status
		structural = true
	}
	if req.SortBy != nil && *req.SortBy != s.filters.SortBy {
		s.filters.SortBy = *req.SortBy
		structural = true
	}
	if req.SortOrder != nil && *req.SortOrder != s.filters.SortOrder {
		s.filters.SortOrder = *req.SortOrder
		structural = true
	}
	if req.Location != nil {
		if *req.Location == "" {
			if s.filters.LocationID != nil {
				s.filters.LocationID = nil
				structural = true
			}
		} else if id, err := strconv.Atoi(*req.Location); err == nil {
			if s.filters.LocationID == nil || *s.filters.LocationID != id {
				s.filters.LocationID = &id
				structural = true
			}
		}
	}

	if structural {
		s.filters.Page = 1
		s.selection = make(map[int]struct{})
		s.page = nil
		s.pageKey = ""
	}

	return s.filters
}

// Select agrega un producto a la selección
func (s *SnapshotStore) Select(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection[productID] = struct{}{}
}

// Deselect saca un producto de la selección
func (s *SnapshotStore) Deselect(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selection, productID)
}

// Selection retorna los ids seleccionados en orden estable
func (s *SnapshotStore) Selection() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ClearSelection vacía la selección
func (s *SnapshotStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[int]struct{})
}

// GetInventory retorna la página de inventario para los filtros vigentes,
// sirviendo desde L1, después L2, y como último recurso el API remoto.
// Un fetch fallido no toca el caché existente.
func (s *SnapshotStore) GetInventory(ctx context.Context, fetch FetchFunc) (*InventoryPage, error) {
	s.mu.RLock()
	filters := s.filters
	page := s.page
	pageKey := s.pageKey
	s.mu.RUnlock()

	key := s.inventoryKey(ctx, filters)

	if page != nil && pageKey == key && time.Since(page.FetchedAt) < s.ttl {
		s.logger.Debug("Inventory L1 cache hit", zap.String("key", key))
		return page, nil
	}

	if s.redisClient != nil {
		if data, err := s.redisClient.Get(ctx, key).Result(); err == nil {
			var cached InventoryPage
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				s.mu.Lock()
				s.page = &cached
				s.pageKey = key
				s.mu.Unlock()
				s.logger.Debug("Inventory L2 cache hit", zap.String("key", key))
				return &cached, nil
			}
		}
	}

	fresh, err := fetch(ctx, filters)
	if err != nil {
		return nil, err
	}
	fresh.FetchedAt = time.Now()

	s.mu.Lock()
	s.page = fresh
	s.pageKey = key
	s.mu.Unlock()

	if s.redisClient != nil {
		if data, err := json.Marshal(fresh); err == nil {
			s.redisClient.Set(ctx, key, data, s.ttl)
		}
	}

	return fresh, nil
}

// InvalidateInventory descarta el snapshot de inventario en ambos niveles.
// Se llama después de cada mutación confirmada (traspaso, ajuste, import,
// descuento de pedido), nunca antes.
func (s *SnapshotStore) InvalidateInventory(ctx context.Context) {
	s.mu.Lock()
	s.page = nil
	s.pageKey = ""
	s.localGen++
	s.mu.Unlock()

	if s.redisClient != nil {
		if err := s.redisClient.Incr(ctx, generationKey).Err(); err != nil {
			s.logger.Warn("Failed to bump inventory generation in Redis", zap.Error(err))
		}
	}
	s.logger.Debug("Inventory snapshot invalidated")
}

// ProductStock retorna el stock disponible de un producto en una sucursal
// según la página cacheada. ok=false si el producto no está en la página.
func (s *SnapshotStore) ProductStock(productID, locationID int) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page == nil {
		return 0, false
	}
	for i := range s.page.Products {
		if s.page.Products[i].ID == productID {
			return s.page.Products[i].StockAt(locationID), true
		}
	}
	return 0, false
}

// GetLocations retorna la lista de sucursales activas, cacheada hasta que
// una mutación de sucursal la invalide. Los traspasos no la invalidan.
func (s *SnapshotStore) GetLocations(ctx context.Context, fetch LocationsFetchFunc) ([]models.Location, error) {
	s.mu.RLock()
	if s.hasLocations {
		locations := s.locations
		s.mu.RUnlock()
		return locations, nil
	}
	s.mu.RUnlock()

	if s.redisClient != nil {
		if data, err := s.redisClient.Get(ctx, locationsKey).Result(); err == nil {
			var cached []models.Location
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				s.mu.Lock()
				s.locations = cached
				s.hasLocations = true
				s.mu.Unlock()
				return cached, nil
			}
		}
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.locations = fresh
	s.hasLocations = true
	s.mu.Unlock()

	if s.redisClient != nil {
		if data, err := json.Marshal(fresh); err == nil {
			s.redisClient.Set(ctx, locationsKey, data, 0)
		}
	}

	return fresh, nil
}

// InvalidateLocations descarta la lista de sucursales en ambos niveles
func (s *SnapshotStore) InvalidateLocations(ctx context.Context) {
	s.mu.Lock()
	s.locations = nil
	s.hasLocations = false
	s.mu.Unlock()

	if s.redisClient != nil {
		s.redisClient.Del(ctx, locationsKey)
	}
	s.logger.Debug("Locations cache invalidated")
}

// LocationName resuelve el nombre de una sucursal cacheada.
// El id 0 es siempre la bodega central sintética.
func (s *SnapshotStore) LocationName(id int) (string, bool) {
	if id == models.MainWarehouseID {
		return "Main Warehouse", true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.locations {
		if s.locations[i].ID == id {
			return s.locations[i].Name, true
		}
	}
	return "", false
}

// inventoryKey arma la clave de página incluyendo la generación vigente
func (s *SnapshotStore) inventoryKey(ctx context.Context, f models.InventoryFilters) string {
	location := "all"
	if f.LocationID != nil {
		location = strconv.Itoa(*f.LocationID)
	}
	return fmt.Sprintf("inventory:%d:%d:%s:%s:%s:%s:%s",
		s.generation(ctx), f.Page, f.Search, f.Status, f.SortBy, f.SortOrder, location)
}

// generation lee el contador de generación compartido. Si Redis no está
// disponible se usa el contador local: el caché sigue siendo correcto para
// esta estación, solo se pierde la invalidación cruzada.
func (s *SnapshotStore) generation(ctx context.Context) int64 {
	if s.redisClient != nil {
		if val, err := s.redisClient.Get(ctx, generationKey).Int64(); err == nil {
			return val
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.localGen
}
