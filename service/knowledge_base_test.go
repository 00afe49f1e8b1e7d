package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interstellar-trade/repository"
)

func newTestKnowledgeBase(t *testing.T) *KnowledgeBase {
	t.Helper()
	catalog, err := repository.LoadBodyCatalog("")
	require.NoError(t, err)
	return NewKnowledgeBase(catalog.All())
}

func TestKnowledgeBase_SearchTopic(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("What is interstellar trade?", 3)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, sourceKnowledgeBase, r.Source)
		assert.Greater(t, r.Score, 0.0)
	}
	assert.Contains(t, results[0].Content, "Interstellar trade refers to")
}

func TestKnowledgeBase_SearchMentionedBody(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("Tell me about Proxima Centauri b", 2)
	require.NotEmpty(t, results)
	assert.Equal(t, sourceCatalog, results[0].Source)
	assert.True(t, strings.HasPrefix(results[0].Content, "Proxima Centauri b:"))
	assert.Contains(t, results[0].Content, "light years")
	assert.Contains(t, results[0].Content, "habitable zone")
}

func TestKnowledgeBase_SolarSystemDistanceInAU(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("how far is mars", 1)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "1.524 AU")
}

func TestKnowledgeBase_SearchShortName(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("Tell me about Proxima", 3)
	require.NotEmpty(t, results)
	assert.Equal(t, sourceCatalog, results[0].Source)
	assert.True(t, strings.HasPrefix(results[0].Content, "Proxima Centauri b:"))
	assert.Equal(t, aliasScore, results[0].Score)

	results = kb.Search("what about trappist?", 3)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, sourceCatalog, r.Source)
		assert.Contains(t, r.Content, "TRAPPIST-1")
	}

	results = kb.Search("Could Alpha Centauri host a colony?", 5)
	require.GreaterOrEqual(t, len(results), 2)
	assert.True(t, strings.HasPrefix(results[0].Content, "Alpha Centauri A:"))
	assert.True(t, strings.HasPrefix(results[1].Content, "Alpha Centauri B:"))
}

func TestKnowledgeBase_ExactNameBeforeAlias(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("Is TRAPPIST-1f habitable?", 3)
	require.Len(t, results, 3)
	assert.True(t, strings.HasPrefix(results[0].Content, "TRAPPIST-1f:"))
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, aliasScore, results[1].Score)
}

func TestKnowledgeBase_ListExoplanets(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("list all exoplanets", 3)
	require.NotEmpty(t, results)
	assert.Equal(t, sourceCatalog, results[0].Source)
	assert.True(t, strings.HasPrefix(results[0].Content, "Known exoplanets in the catalog:"))
	assert.Contains(t, results[0].Content, "Proxima Centauri b (4.25 light years)")
	assert.Contains(t, results[0].Content, "TRAPPIST-1e")
	assert.NotContains(t, results[0].Content, "Sirius")
}

func TestBodyAliases(t *testing.T) {
	assert.Equal(t, []string{"proxima centauri", "proxima"}, bodyAliases("proxima centauri b"))
	assert.Equal(t, []string{"sirius"}, bodyAliases("sirius a"))
	assert.Equal(t, []string{"trappist"}, bodyAliases("trappist 1e"))
	assert.Nil(t, bodyAliases("orion nebula"))
	assert.Nil(t, bodyAliases("mars"))
}

func TestKnowledgeBase_Fallback(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	results := kb.Search("xyzzy plugh", 3)
	require.Len(t, results, 1)
	assert.Equal(t, sourceFallback, results[0].Source)
	assert.Equal(t, noInformationAnswer, joinPassages(results))
}

func TestKnowledgeBase_LimitDefault(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	assert.Len(t, kb.Search("how does time dilation affect interest rates", 0), 3)
	assert.Len(t, kb.Search("how does time dilation affect interest rates", 1), 1)
}

func TestSimilarity(t *testing.T) {
	a := wordSet("Time dilation, interest!")
	b := wordSet("interest rates and time")

	assert.InDelta(t, 2.0/4.0, similarity(a, b), 1e-12)
	assert.Zero(t, similarity(a, wordSet("")))
}

func TestNormalizeQuestion(t *testing.T) {
	assert.Equal(t, "what is trappist 1e", normalizeQuestion("  What is TRAPPIST-1e?? "))
}
