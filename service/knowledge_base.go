package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"interstellar-trade/domain"
)

const (
	sourceKnowledgeBase = "knowledge_base"
	sourceCatalog       = "catalog"
	sourceFallback      = "fallback"

	noInformationAnswer = "I'm sorry, I don't have specific information about that topic in my knowledge base. " +
		"Please try asking about interstellar trade, space economics, or related topics."
)

type topic struct {
	question string
	words    map[string]struct{}
	passages []string
}

// KnowledgeBase answers questions from a fixed set of interstellar-economics
// passages and the body catalog. Matching is word overlap, not embeddings.
type KnowledgeBase struct {
	topics []topic
	bodies []domain.CelestialBody
	extra  map[string]string
}

// NewKnowledgeBase builds the knowledge base over the given bodies.
func NewKnowledgeBase(bodies []domain.CelestialBody) *KnowledgeBase {
	kb := &KnowledgeBase{
		bodies: bodies,
		extra:  exoplanetNotes,
	}
	for question, passages := range tradeTopics {
		kb.topics = append(kb.topics, topic{
			question: question,
			words:    wordSet(question),
			passages: passages,
		})
	}
	// map iteration order is random; keep ties deterministic
	sort.Slice(kb.topics, func(i, j int) bool {
		return kb.topics[i].question < kb.topics[j].question
	})
	return kb
}

// Search returns up to limit passages relevant to question, best first. It
// never returns an empty slice: unmatched questions get a fallback passage.
func (kb *KnowledgeBase) Search(question string, limit int) []domain.Passage {
	if limit <= 0 {
		limit = 3
	}
	normalized := normalizeQuestion(question)
	words := wordSet(normalized)

	var results []domain.Passage
	if wantsExoplanetList(words) {
		results = append(results, domain.Passage{
			Content: kb.listExoplanets(),
			Source:  sourceCatalog,
			Score:   1,
		})
	}

	exact, partial := kb.mentionedBodies(normalized)
	for _, body := range exact {
		results = append(results, domain.Passage{
			Content: kb.describeBody(body),
			Source:  sourceCatalog,
			Score:   1,
		})
	}
	for _, body := range partial {
		results = append(results, domain.Passage{
			Content: kb.describeBody(body),
			Source:  sourceCatalog,
			Score:   aliasScore,
		})
	}

	var best *topic
	bestScore := 0.0
	for i := range kb.topics {
		score := similarity(words, kb.topics[i].words)
		if score > bestScore {
			bestScore = score
			best = &kb.topics[i]
		}
	}
	// una sola palabra en común no alcanza si ya hay un cuerpo mencionado
	if best != nil && (len(results) == 0 || bestScore >= minTopicScore) {
		for _, p := range best.passages {
			results = append(results, domain.Passage{
				Content: p,
				Source:  sourceKnowledgeBase,
				Score:   bestScore,
			})
		}
	}

	if len(results) == 0 {
		return []domain.Passage{{Content: noInformationAnswer, Source: sourceFallback}}
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// mentionedBodies returns catalog bodies named in the question. exact holds
// full-name matches, longest name first so "sirius b" wins over "sirius".
// partial holds bodies matched only by a short alias such as "proxima" or
// "alpha centauri", in catalog order.
func (kb *KnowledgeBase) mentionedBodies(normalized string) (exact, partial []domain.CelestialBody) {
	padded := " " + normalized + " "
	contains := func(name string) bool {
		return name != "" && strings.Contains(padded, " "+name+" ")
	}

	for _, body := range kb.bodies {
		name := normalizeQuestion(body.Name)
		if contains(name) {
			exact = append(exact, body)
			continue
		}
		for _, alias := range bodyAliases(name) {
			if contains(alias) {
				partial = append(partial, body)
				break
			}
		}
	}
	sort.SliceStable(exact, func(i, j int) bool {
		return len(exact[i].Name) > len(exact[j].Name)
	})
	return exact, partial
}

// bodyAliases derives short names from a normalized body name. Only names
// carrying a designation ("b", "1e", "359") get aliases: the name without its
// trailing designations and its leading word. "Orion Nebula" gets none.
func bodyAliases(name string) []string {
	tokens := strings.Fields(name)
	end := len(tokens)
	for end > 0 && isDesignation(tokens[end-1]) {
		end--
	}
	if end == 0 || end == len(tokens) {
		return nil
	}

	var aliases []string
	if end > 1 {
		aliases = append(aliases, strings.Join(tokens[:end], " "))
	}
	if len(tokens[0]) >= 3 {
		aliases = append(aliases, tokens[0])
	}
	return aliases
}

func isDesignation(token string) bool {
	if len([]rune(token)) == 1 {
		return true
	}
	return strings.IndexFunc(token, unicode.IsDigit) >= 0
}

func wantsExoplanetList(words map[string]struct{}) bool {
	_, list := words["list"]
	_, all := words["all"]
	if !list && !all {
		return false
	}
	for _, w := range []string{"exoplanet", "exoplanets", "planet", "planets", "worlds"} {
		if _, ok := words[w]; ok {
			return true
		}
	}
	return false
}

func (kb *KnowledgeBase) listExoplanets() string {
	var names []string
	for _, body := range kb.bodies {
		if body.Category == domain.CategoryExoplanet {
			names = append(names, fmt.Sprintf("%s (%.2f light years)", body.Name, body.DistanceAU/lightYearAU))
		}
	}
	if len(names) == 0 {
		return "The catalog lists no exoplanets."
	}
	return "Known exoplanets in the catalog: " + strings.Join(names, ", ") + "."
}

func (kb *KnowledgeBase) describeBody(body domain.CelestialBody) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s.", body.Name, body.Description)
	if body.DistanceAU >= lightYearAU/10 {
		fmt.Fprintf(&b, " Distance from the Sun: %.2f light years (%.1f AU).", body.DistanceAU/lightYearAU, body.DistanceAU)
	} else {
		fmt.Fprintf(&b, " Distance from the Sun: %.3f AU.", body.DistanceAU)
	}
	if note, ok := kb.extra[body.Name]; ok {
		b.WriteString(" ")
		b.WriteString(note)
	}
	return b.String()
}

const (
	lightYearAU = 63241.1

	aliasScore    = 0.8
	minTopicScore = 0.5
)

// similarity is |A∩B| / max(|A|, |B|).
func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if _, ok := b[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(a), len(b)))
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(normalizeQuestion(text)) {
		set[w] = struct{}{}
	}
	return set
}

// normalizeQuestion lower-cases text and turns punctuation into spaces.
func normalizeQuestion(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}

var tradeTopics = map[string][]string{
	"what is interstellar trade": {
		"Interstellar trade refers to the exchange of goods, services, and resources between different star systems or planetary colonies. It involves complex logistics including space transportation, resource allocation, and economic systems that account for vast distances and time delays.",
		"The foundation of interstellar trade lies in comparative advantage between different planetary systems, where each system specializes in producing goods or services that they can provide most efficiently, creating a mutually beneficial economic network across space.",
		"Key challenges in interstellar trade include dealing with relativistic time dilation, managing supply chains across light-years, and establishing standardized economic systems that can function across different planetary environments and cultures.",
	},
	"how does space economics work": {
		"Space economics operates on principles of resource scarcity and abundance, where the value of goods is determined by their availability in different planetary systems and the cost of transportation between them. Rare minerals on one planet might be common on another, creating natural trade opportunities.",
		"The economics of space colonization and trade must account for the high initial costs of space infrastructure, the long-term benefits of resource extraction, and the development of sustainable economic systems that can support permanent off-world settlements.",
		"Space economics introduces unique concepts like 'time-value of money' across interstellar distances, where the time delay in communication and transportation must be factored into economic calculations and investment decisions.",
	},
	"what are the main challenges of interstellar commerce": {
		"The primary challenges of interstellar commerce include the vast distances between trading partners, which can lead to significant time delays in communication and transportation, requiring new approaches to supply chain management and economic planning.",
		"Different planetary environments and resource availability create complex pricing mechanisms, where the value of goods can vary dramatically between systems based on local conditions, technological capabilities, and resource abundance.",
		"Legal and regulatory frameworks for interstellar trade must account for different planetary governments, cultural differences, and the need for standardized systems that can function across vast distances while respecting local autonomy.",
	},
	"what technologies enable interstellar trade": {
		"Advanced propulsion systems, such as fusion drives or theoretical concepts like warp drives, are essential for making interstellar trade feasible by reducing travel times between star systems to manageable durations.",
		"Communication technologies that can bridge interstellar distances, including quantum entanglement networks or advanced laser communication systems, are crucial for maintaining economic relationships and coordinating trade across light-years.",
		"Automated manufacturing and resource extraction technologies enable self-sustaining colonies and trading posts, reducing the need for constant resupply from Earth and allowing for more efficient local production of goods.",
	},
	"how does time dilation affect interest rates krugman theory": {
		"The Theory of Interstellar Trade by Paul Krugman (1978) explores how trade would work between planets in different star systems, taking into account relativistic effects. Time dilation affects the calculation of interest rates, and interest rates must be calculated in the appropriate reference frame.",
		"In interstellar trade, time passes more slowly for the traveling ship than for observers on Earth. The Lorentz factor (gamma = 1/sqrt(1 - v²/c²)) determines the amount of time dilation, and this effect must be factored into trade calculations.",
		"For upfront payment the buyer's capital could have earned interest on Earth during the trip, so interest compounds over Earth time. For payment on delivery the seller waits longer, so interest compounds over Earth time stretched by the dilation factor.",
	},
}

var exoplanetNotes = map[string]string{
	"Proxima Centauri b": "Terrestrial planet with an estimated temperature range of -39°C to 30°C and about 1.3 times Earth's gravity, located in the habitable zone of its star.",
	"TRAPPIST-1e":        "Terrestrial planet with a temperature range of roughly -60°C to 20°C and 0.93 times Earth's gravity; part of a system of seven Earth-sized planets.",
	"Alpha Centauri B":   "Its candidate super-Earth, Alpha Centauri Bb, would have a surface temperature near 1200°C, making it unlikely to support life as we know it.",
}
