package mapping

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/urban-traffic-lab/tmc-to-sumo/counts"
)

// Coordinates is a lon/lat pair as supplied by the counts dataset.
type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NetworkCoordinates is a resolved junction position in network units.
type NetworkCoordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CacheRecord is everything remembered about a resolved junction. Written
// once on first resolution and only ever replaced wholesale.
type CacheRecord struct {
	JunctionID         string             `json:"intersection_id"`
	CentrelineID       string             `json:"centreline_id"`
	LocationName       string             `json:"location_name"`
	InputCoordinates   *Coordinates       `json:"input_coordinates"`
	NetworkCoordinates NetworkCoordinates `json:"network_coordinates"`
	DataAvailability   []counts.Interval  `json:"data_availability"`
	EdgeMapping        JunctionMapping    `json:"edge_mapping"`
}

// Store is a get-or-compute cache of junction records. The pipeline takes
// it as a dependency, so tests run against MemoryStore.
type Store interface {
	Get(junctionID string) (CacheRecord, bool)
	Put(junctionID string, record CacheRecord) error
}

// DocumentStore persists records as a single JSON document that is loaded
// wholesale at open and rewritten wholesale on every Put. Writes go through
// a temp file and rename, so readers never observe a torn document; the
// mutex covers in-process callers only. Concurrent processes still race at
// whole-document granularity (last writer wins).
type DocumentStore struct {
	mu      sync.Mutex
	path    string
	records map[string]CacheRecord
}

// OpenDocumentStore loads the cache document at path. A missing, empty or
// corrupted file degrades to an empty cache rather than failing the run.
func OpenDocumentStore(path string) *DocumentStore {
	store := &DocumentStore{
		path:    path,
		records: make(map[string]CacheRecord),
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return store
	}
	if err := json.Unmarshal(data, &store.records); err != nil {
		log.Printf("Cache file %s is unreadable, starting empty: %v", path, err)
		store.records = make(map[string]CacheRecord)
	}
	return store
}

// Get returns the cached record for a junction.
func (s *DocumentStore) Get(junctionID string) (CacheRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[junctionID]
	return record, ok
}

// Put stores a record and rewrites the whole document.
func (s *DocumentStore) Put(junctionID string, record CacheRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[junctionID] = record

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create cache directory")
		}
	}
	data, err := json.MarshalIndent(s.records, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encode cache document")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write cache document")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace cache document")
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and one-shot runs.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]CacheRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]CacheRecord)}
}

func (s *MemoryStore) Get(junctionID string) (CacheRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[junctionID]
	return record, ok
}

func (s *MemoryStore) Put(junctionID string, record CacheRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[junctionID] = record
	return nil
}
