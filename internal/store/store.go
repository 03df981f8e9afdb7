// Package store holds the process-lifetime cache of products, sales and
// dashboard totals. Every screen reads from here and mutates only through
// the named operations; nothing else in the repo issues backend calls for
// data this cache owns.
//
// Collections are replaced wholesale after each reload — the cache never
// patches an entry in place with a mutation's response body.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
)

// Store is constructed once at startup and injected into every handler.
// Lifecycle: New → LoadAll on login (or on boot with a static token) →
// Reset on logout.
type Store struct {
	gw  *gateway.Client
	log zerolog.Logger

	mu       sync.RWMutex
	token    string
	products []model.Producto
	sales    []model.Venta
	stats    *model.DashboardTotals
	loading  bool
	errMsg   string
	// salesSeq tags each sales query at dispatch; responses carrying an
	// older tag than the newest dispatched query are discarded so a slow
	// filtered fetch cannot overwrite fresher state.
	salesSeq uint64
	// salesLoaded distinguishes "never loaded" from "loaded and empty".
	salesLoaded bool
}

// Snapshot is a point-in-time read of the cache.
type Snapshot struct {
	Products    []model.Producto
	Sales       []model.Venta
	Stats       *model.DashboardTotals
	Loading     bool
	Error       string
	SalesLoaded bool
}

func New(gw *gateway.Client, log zerolog.Logger, staticToken string) *Store {
	return &Store{
		gw:    gw,
		log:   log.With().Str("component", "store").Logger(),
		token: staticToken,
	}
}

// SetSession installs the bearer token obtained at login.
func (s *Store) SetSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != "" {
		s.token = token
	}
}

// Reset empties the cache on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.products = nil
	s.sales = nil
	s.stats = nil
	s.loading = false
	s.errMsg = ""
	s.salesLoaded = false
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Products:    make([]model.Producto, len(s.products)),
		Sales:       make([]model.Venta, len(s.sales)),
		Stats:       s.stats,
		Loading:     s.loading,
		Error:       s.errMsg,
		SalesLoaded: s.salesLoaded,
	}
	copy(snap.Products, s.products)
	copy(snap.Sales, s.sales)
	return snap
}

func (s *Store) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoadAll fetches dashboard totals and products concurrently. The two calls
// fail independently: either failure is recorded in the shared error field
// without blocking the other from landing.
func (s *Store) LoadAll(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	token := s.token
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.fetchTotales(ctx, token)
	}()
	go func() {
		defer wg.Done()
		s.fetchProductos(ctx, token)
	}()
	wg.Wait()

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) fetchTotales(ctx context.Context, token string) {
	totals, err := s.gw.FetchTotales(ctx, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("error cargando totales")
		s.errMsg = err.Error()
		return
	}
	s.stats = totals
}

func (s *Store) fetchProductos(ctx context.Context, token string) {
	productos, err := s.gw.FetchProductos(ctx, token)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("error cargando productos")
		s.errMsg = err.Error()
		return
	}
	s.products = productos
}

// LoadSales replaces the sales collection. With an empty date it is a full
// reload that toggles the shared loading flag and records failures in the
// shared error field. With a date it is a filter-only refresh: the loading
// flag is left alone (list views must not flash a full-page spinner) and
// the error is only returned to the caller.
func (s *Store) LoadSales(ctx context.Context, date string) error {
	s.mu.Lock()
	s.salesSeq++
	seq := s.salesSeq
	if date == "" {
		s.loading = true
		s.errMsg = ""
	}
	token := s.token
	s.mu.Unlock()

	ventas, err := s.gw.FetchVentas(ctx, token, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if date == "" {
		s.loading = false
	}
	if err != nil {
		s.log.Error().Err(err).Str("date", date).Msg("error cargando ventas")
		if date == "" {
			s.errMsg = err.Error()
		}
		return err
	}
	if seq < s.salesSeq {
		// A newer query was dispatched while this one was in flight.
		s.log.Debug().Uint64("seq", seq).Uint64("latest", s.salesSeq).Msg("descartando respuesta de ventas obsoleta")
		return nil
	}
	s.sales = ventas
	s.salesLoaded = true
	return nil
}

// refreshAfterMutation reloads products and totals after any successful
// mutation — even a sale, since a sale changes stock. Runs to completion
// before the mutation is reported as successful.
func (s *Store) refreshAfterMutation(ctx context.Context) {
	token := s.currentToken()
	s.fetchProductos(ctx, token)
	s.fetchTotales(ctx, token)
}

// AddProduct creates a product and reloads the dependent collections.
// The backend's parsed response is returned unchanged.
func (s *Store) AddProduct(ctx context.Context, payload interface{}) (json.RawMessage, error) {
	res, err := s.gw.CreateProducto(ctx, s.currentToken(), payload)
	if err != nil {
		return nil, err
	}
	s.refreshAfterMutation(ctx)
	return res, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, payload interface{}) (json.RawMessage, error) {
	res, err := s.gw.UpdateProducto(ctx, s.currentToken(), id, payload)
	if err != nil {
		return nil, err
	}
	s.refreshAfterMutation(ctx)
	return res, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (json.RawMessage, error) {
	res, err := s.gw.DeleteProducto(ctx, s.currentToken(), id)
	if err != nil {
		return nil, err
	}
	s.refreshAfterMutation(ctx)
	return res, nil
}

// AddSale records a sale, reloads products and totals, then reloads the
// unfiltered sales collection. A caller observing success can rely on the
// cache already reflecting the new sale.
func (s *Store) AddSale(ctx context.Context, payload interface{}) (*gateway.VentaCreada, error) {
	res, err := s.gw.CreateVenta(ctx, s.currentToken(), payload)
	if err != nil {
		return nil, err
	}
	s.refreshAfterMutation(ctx)
	if err := s.LoadSales(ctx, ""); err != nil {
		s.log.Error().Err(err).Msg("error recargando ventas tras registrar venta")
	}
	return res, nil
}

// SaleDetail proxies GET /ventas/:id. Sale detail is not cached; screens go
// through the store anyway so they never touch the gateway directly.
func (s *Store) SaleDetail(ctx context.Context, id string) (*model.Venta, error) {
	return s.gw.FetchVenta(ctx, s.currentToken(), id)
}
