// Package teamname builds fantasy team names out of the book titles
// behind a drafted lineup. Names follow a "The <Realm> <Mascot>"
// shape, with the mascot pulled from the lineup's own titles when
// anything usable is there.
package teamname

import (
	"regexp"
	"strings"

	"github.com/obaflips/court-reads/internal/models"
	"github.com/obaflips/court-reads/internal/rng"
)

// DefaultName is returned for empty lineups.
const DefaultName = "The Court Readers"

var powerWords = []string{
	"Kingdom", "Shadow", "Dragon", "Storm", "Fire", "Ice", "Blood", "Night",
	"Crown", "Throne", "Sword", "Magic", "Dark", "Light", "Star", "Moon",
	"Sun", "Phoenix", "Wolf", "Raven", "Eagle", "Lion", "Bear", "Serpent",
	"Frost", "Flame", "Thunder", "Wind", "Stone", "Iron", "Steel", "Gold",
	"Silver", "Crystal", "Ember", "Ash", "Bone", "Spirit", "Soul", "Titan",
	"Giant", "Warrior", "Knight", "King", "Queen", "Prince", "Lord", "Lady",
	"Wizard", "Witch", "Mage", "Sorcerer", "Hunter", "Assassin", "Thief",
	"Champion", "Legend", "Myth", "Oracle", "Prophet", "Guardian", "Sentinel",
}

var skipWords = []string{
	"the", "a", "an", "of", "and", "or", "in", "on", "at", "to", "for",
	"with", "by", "from", "as", "is", "it", "that", "this", "be", "are",
	"was", "were", "been", "being", "have", "has", "had", "do", "does",
	"did", "will", "would", "could", "should", "may", "might", "must",
	"book", "part", "volume", "series", "chapter", "novel",
}

var realms = []string{
	"Midnight", "Shadow", "Crystal", "Ember", "Frost", "Thunder", "Storm",
	"Golden", "Silver", "Iron", "Dark", "Light", "Ancient", "Eternal",
	"Savage", "Silent", "Crimson", "Azure", "Obsidian", "Jade",
}

var fallbackSuffixes = []string{
	"Dragons", "Warriors", "Knights", "Titans", "Legends", "Champions",
	"Guardians", "Ravens", "Wolves", "Phoenix", "Storm", "Thunder",
}

// Mass nouns and words already evocative in singular form stay as-is.
var irregularPlurals = map[string]string{
	"phoenix": "Phoenix",
	"thunder": "Thunder",
	"storm":   "Storm",
	"fire":    "Fire",
	"ice":     "Ice",
	"magic":   "Magic",
	"light":   "Light",
	"dark":    "Dark",
	"frost":   "Frost",
	"flame":   "Flame",
	"blood":   "Blood",
	"wind":    "Wind",
}

var powerWordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(powerWords))
	for _, w := range powerWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}()

var skipWordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(skipWords))
	for _, w := range skipWords {
		set[w] = struct{}{}
	}
	return set
}()

var nonAlpha = regexp.MustCompile(`[^a-zA-Z\s]`)

// Generator produces team names with an injectable randomness source.
type Generator struct {
	src rng.Source
}

func NewGenerator(src rng.Source) *Generator {
	return &Generator{src: src}
}

// Generate builds one name from the lineup's book titles. With no
// usable title words it falls back to a stock mascot; with no lineup
// at all it returns DefaultName.
func (g *Generator) Generate(lineup []models.LineupSlot) string {
	if len(lineup) == 0 {
		return DefaultName
	}

	var words []string
	for _, slot := range lineup {
		if slot.Book == nil {
			continue
		}
		words = append(words, ExtractPowerWords(slot.Book.Title)...)
	}

	words = dedupe(words)
	g.src.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	realm := realms[g.src.Intn(len(realms))]

	var suffix string
	if len(words) > 0 {
		// Prefer a known power word as the mascot.
		pick := words[0]
		for _, w := range words {
			if _, ok := powerWordSet[strings.ToLower(w)]; ok {
				pick = w
				break
			}
		}
		suffix = Pluralize(pick)
	} else {
		suffix = fallbackSuffixes[g.src.Intn(len(fallbackSuffixes))]
	}

	return "The " + realm + " " + suffix
}

// Options generates up to count distinct names. Bounded attempts keep
// small vocabularies from looping forever.
func (g *Generator) Options(lineup []models.LineupSlot, count int) []string {
	seen := make(map[string]struct{}, count)
	var out []string
	for attempts := 0; len(out) < count && attempts < count*3; attempts++ {
		name := g.Generate(lineup)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ExtractPowerWords pulls name-worthy words from a book title: known
// power words, plus any non-stopword of five letters or more. Words
// come back title-cased with punctuation stripped.
func ExtractPowerWords(title string) []string {
	if title == "" {
		return nil
	}

	var out []string
	for _, raw := range strings.Fields(nonAlpha.ReplaceAllString(title, "")) {
		if len(raw) <= 2 {
			continue
		}
		word := strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
		lower := strings.ToLower(word)

		if _, skip := skipWordSet[lower]; skip {
			continue
		}
		_, isPower := powerWordSet[lower]
		if isPower || len(word) >= 5 {
			out = append(out, word)
		}
	}
	return out
}

// Pluralize turns a mascot word into its team-name form. Irregulars
// stay singular; the rest follow standard English pluralization.
func Pluralize(word string) string {
	if word == "" {
		return word
	}
	if p, ok := irregularPlurals[strings.ToLower(word)]; ok {
		return p
	}

	switch {
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(word, "f"):
		return word[:len(word)-1] + "ves"
	default:
		return word + "s"
	}
}

func isVowel(c byte) bool {
	switch c | 0x20 {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
