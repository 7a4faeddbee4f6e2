package rgb2spec

import (
	"fmt"
	"strings"
	"sync"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/log"
)

var logger = log.New("rgb2spec")

// The process-wide table registry. Tables are registered or fitted
// once and shared read-only between every render worker afterwards.
var registry = struct {
	sync.RWMutex
	tables map[string]*Table
}{tables: make(map[string]*Table)}

// Register shares a fitted table with ForGamut callers. Registered
// tables must not be mutated afterwards.
func Register(t *Table) {
	registry.Lock()
	registry.tables[t.Gamut] = t
	registry.Unlock()
}

// LoadAsset fetches, decodes and registers the table asset for one
// gamut. The base location may be a local directory or an http/https
// URL prefix.
func LoadAsset(base string, g colorspace.Gamut, res int) error {
	path := strings.TrimSuffix(base, "/") + "/" + AssetName(g.Name(), res)

	rsc, err := asset.NewResource(path, nil)
	if err != nil {
		return fmt.Errorf("rgb2spec: loading table for gamut %s: %v", g.Name(), err)
	}
	defer rsc.Close()

	t, err := Decode(rsc, g.Name(), res)
	if err != nil {
		return err
	}
	Register(t)

	logger.Noticef("loaded %d^3 %s table from %s", res, g.Name(), rsc.Path())
	return nil
}

// ForGamut returns the shared coefficient table for a gamut. When no
// asset has been registered a table is fitted in process at
// DefaultResolution, which is noticeably slower and coarser than a
// prebuilt asset.
func ForGamut(g colorspace.Gamut) (*Table, error) {
	registry.RLock()
	t := registry.tables[g.Name()]
	registry.RUnlock()
	if t != nil {
		return t, nil
	}

	registry.Lock()
	defer registry.Unlock()
	if t := registry.tables[g.Name()]; t != nil {
		return t, nil
	}

	logger.Noticef("no table registered for gamut %s; fitting a %d^3 table in process (generate assets with the rgb2spec command to skip this)",
		g.Name(), DefaultResolution)

	t, err := Build(g, DefaultResolution)
	if err != nil {
		return nil, err
	}
	registry.tables[g.Name()] = t
	return t, nil
}
