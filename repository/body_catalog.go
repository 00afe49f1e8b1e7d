package repository

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"interstellar-trade/domain"
)

//go:embed bodies.yaml
var embeddedBodies []byte

var ErrBodyNotFound = errors.New("celestial body not found")

type catalogFile struct {
	Version string                 `yaml:"version"`
	Bodies  []domain.CelestialBody `yaml:"bodies"`
}

// BodyCatalog is the read-only table of known celestial bodies. It is loaded
// once at startup and never mutated afterwards.
type BodyCatalog struct {
	version string
	byName  map[string]domain.CelestialBody
	ordered []domain.CelestialBody
}

// LoadBodyCatalog reads the catalog from path, or from the embedded asset
// when path is empty.
func LoadBodyCatalog(path string) (*BodyCatalog, error) {
	data := embeddedBodies
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read body catalog: %w", err)
		}
		data = raw
	}
	return ParseBodyCatalog(data)
}

func ParseBodyCatalog(data []byte) (*BodyCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse body catalog: %w", err)
	}
	if len(file.Bodies) == 0 {
		return nil, errors.New("body catalog is empty")
	}

	byName := make(map[string]domain.CelestialBody, len(file.Bodies))
	for i, body := range file.Bodies {
		if body.Name == "" {
			return nil, fmt.Errorf("body catalog entry %d has no name", i)
		}
		if _, dup := byName[body.Name]; dup {
			return nil, fmt.Errorf("body catalog lists %q twice", body.Name)
		}
		if math.IsNaN(body.DistanceAU) || math.IsInf(body.DistanceAU, 0) || body.DistanceAU < 0 {
			return nil, fmt.Errorf("body %q has invalid distance %v", body.Name, body.DistanceAU)
		}
		byName[body.Name] = body
	}

	ordered := make([]domain.CelestialBody, len(file.Bodies))
	copy(ordered, file.Bodies)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DistanceAU != ordered[j].DistanceAU {
			return ordered[i].DistanceAU < ordered[j].DistanceAU
		}
		return ordered[i].Name < ordered[j].Name
	})

	return &BodyCatalog{
		version: file.Version,
		byName:  byName,
		ordered: ordered,
	}, nil
}

func (c *BodyCatalog) Version() string {
	return c.version
}

func (c *BodyCatalog) Lookup(name string) (domain.CelestialBody, bool) {
	body, ok := c.byName[name]
	return body, ok
}

// Get is Lookup with an error, for callers that report not-found upstream.
func (c *BodyCatalog) Get(name string) (domain.CelestialBody, error) {
	body, ok := c.byName[name]
	if !ok {
		return domain.CelestialBody{}, fmt.Errorf("%w: %q", ErrBodyNotFound, name)
	}
	return body, nil
}

// All returns the bodies ordered by distance, then name.
func (c *BodyCatalog) All() []domain.CelestialBody {
	out := make([]domain.CelestialBody, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *BodyCatalog) Len() int {
	return len(c.ordered)
}
