package domain

type BodyCategory string

const (
	CategorySolarSystem     BodyCategory = "solar_system"
	CategoryNearbyStar      BodyCategory = "nearby_star"
	CategoryExoplanet       BodyCategory = "exoplanet"
	CategoryStarSystem      BodyCategory = "star_system"
	CategoryGalacticFeature BodyCategory = "galactic_feature"
)

// CelestialBody is static reference data. Distances are measured in AU along a
// single radial line from the origin; only DistanceAU takes part in pricing.
type CelestialBody struct {
	Name        string       `json:"name" yaml:"name"`
	DistanceAU  float64      `json:"distanceAU" yaml:"distance_au"`
	Category    BodyCategory `json:"category" yaml:"category"`
	Color       string       `json:"color,omitempty" yaml:"color"`
	Size        int          `json:"size,omitempty" yaml:"size"`
	Description string       `json:"description,omitempty" yaml:"description"`
}
