// Package species holds the read-only region-to-species lookup table
// behind the recommendation tool. The data is static: there is no
// inference, only an ordered list of up to ten native species per
// region.
package species

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MaxPerRegion caps how many species a region entry may carry.
const MaxPerRegion = 10

type Region struct {
	Name    string   `json:"name"`
	Species []string `json:"species"`
}

type catalogFile struct {
	Regions []Region `json:"regions"`
}

// Catalog is an immutable-after-construction mapping from region name
// to an ordered species list. The mutex only guards against misuse if a
// future caller registers regions after startup.
type Catalog struct {
	mu      sync.RWMutex
	regions map[string][]string
	order   []string
}

func NewCatalog() *Catalog {
	return &Catalog{regions: make(map[string][]string)}
}

// Default returns a catalog populated with the built-in dataset.
func Default() *Catalog {
	c := NewCatalog()
	for _, r := range defaultRegions {
		c.Register(r)
	}
	return c
}

// LoadFromFile reads a catalog from a JSON file, replacing the built-in
// dataset entirely.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse species catalog: %w", err)
	}
	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("species catalog %s defines no regions", path)
	}

	c := NewCatalog()
	for _, r := range file.Regions {
		c.Register(r)
	}
	return c, nil
}

// Register adds a region, truncating its species list to MaxPerRegion.
// Registering the same name twice overwrites the species list but keeps
// the original position in the region order.
func (c *Catalog) Register(r Region) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := r.Species
	if len(list) > MaxPerRegion {
		list = list[:MaxPerRegion]
	}
	if _, exists := c.regions[r.Name]; !exists {
		c.order = append(c.order, r.Name)
	}
	c.regions[r.Name] = append([]string(nil), list...)
}

// Regions returns region names in registration order.
func (c *Catalog) Regions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Species returns a copy of the ordered species list for a region, or
// nil if the region is unknown. An unknown region is not an error.
func (c *Catalog) Species(region string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list, ok := c.regions[region]
	if !ok {
		return nil
	}
	return append([]string(nil), list...)
}

// Has reports whether the region exists in the catalog.
func (c *Catalog) Has(region string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.regions[region]
	return ok
}

// Len returns the number of registered regions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
