// Package memory implementa el puerto de stock sobre mapas en memoria.
// Sirve de backend para tests y entornos sin PostgreSQL; replica la misma
// disciplina de concurrencia: mutaciones serializadas por artículo y
// commit atómico (o se aplica todo o no se aplica nada).
package memory

import (
	"sync"
	"time"

	"github.com/tu-usuario/marketplace-stock/internal/domain/entity"
)

// Store guarda los registros por itemID. Todas las lecturas y escrituras
// clonan: ningún caller retiene punteros al estado interno.
type Store struct {
	mu      sync.RWMutex
	records map[string]*entity.StockRecord

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewStore construye el store vacío.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*entity.StockRecord),
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockFor devuelve el mutex del artículo, creándolo la primera vez.
// Claves distintas avanzan en paralelo.
func (s *Store) lockFor(itemID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	m, ok := s.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[itemID] = m
	}
	return m
}

func (s *Store) get(itemID string) *entity.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecord(s.records[itemID])
}

func (s *Store) snapshot() []*entity.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.StockRecord, 0, len(s.records))
	for _, r := range s.records {
		list = append(list, cloneRecord(r))
	}
	return list
}

// apply vuelca los cambios preparados de una transacción en un solo paso.
func (s *Store) apply(staged map[string]*entity.StockRecord, deleted map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for itemID := range deleted {
		delete(s.records, itemID)
	}
	for itemID, r := range staged {
		s.records[itemID] = cloneRecord(r)
	}
}

func cloneRecord(r *entity.StockRecord) *entity.StockRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.ReorderLevel = cloneInt(r.ReorderLevel)
	c.ReorderQty = cloneInt(r.ReorderQty)
	c.LastRestocked = cloneTime(r.LastRestocked)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
