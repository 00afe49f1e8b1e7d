package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interstellar-trade/domain"
)

func TestLoadBodyCatalog_Embedded(t *testing.T) {
	catalog, err := LoadBodyCatalog("")
	require.NoError(t, err)

	assert.Equal(t, "2024.1", catalog.Version())
	assert.GreaterOrEqual(t, catalog.Len(), 20)

	earth, ok := catalog.Lookup("Earth")
	require.True(t, ok)
	assert.Equal(t, 1.0, earth.DistanceAU)
	assert.Equal(t, domain.CategorySolarSystem, earth.Category)

	_, ok = catalog.Lookup("earth")
	assert.False(t, ok, "lookups are case-sensitive")

	all := catalog.All()
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].DistanceAU, all[i].DistanceAU)
	}
	assert.Equal(t, "Mercury", all[0].Name)
}

func TestBodyCatalog_AllReturnsCopy(t *testing.T) {
	catalog, err := LoadBodyCatalog("")
	require.NoError(t, err)

	all := catalog.All()
	all[0].Name = "Vulcan"
	assert.Equal(t, "Mercury", catalog.All()[0].Name)
}

func TestBodyCatalog_Get(t *testing.T) {
	catalog, err := LoadBodyCatalog("")
	require.NoError(t, err)

	body, err := catalog.Get("Sirius B")
	require.NoError(t, err)
	assert.Equal(t, "Sirius B", body.Name)

	_, err = catalog.Get("Pluto")
	assert.True(t, errors.Is(err, ErrBodyNotFound))
}

func TestLoadBodyCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	data := []byte(`version: test
bodies:
  - {name: Far, distance_au: 10}
  - {name: Near, distance_au: 2}
  - {name: Also Near, distance_au: 2}
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	catalog, err := LoadBodyCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "test", catalog.Version())

	all := catalog.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Also Near", "Near", "Far"}, []string{all[0].Name, all[1].Name, all[2].Name})

	_, err = LoadBodyCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseBodyCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":     "version: x\nbodies: []\n",
		"no name":   "bodies:\n  - {distance_au: 1}\n",
		"duplicate": "bodies:\n  - {name: A, distance_au: 1}\n  - {name: A, distance_au: 2}\n",
		"negative":  "bodies:\n  - {name: A, distance_au: -1}\n",
		"nan":       "bodies:\n  - {name: A, distance_au: .nan}\n",
		"malformed": "bodies: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBodyCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}
