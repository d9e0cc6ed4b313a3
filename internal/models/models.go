package models

// Book represents one finished read from the spreadsheet.
type Book struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	Rating         float64  `json:"rating"` // 0-5, halves allowed
	DateFinished   string   `json:"dateFinished"`
	SeriesPosition string   `json:"seriesPosition,omitempty"`
	CoverURL       string   `json:"coverUrl,omitempty"`
	PurchaseURL    string   `json:"purchaseUrl,omitempty"`
	CharacterIDs   []string `json:"characterIds,omitempty"`
	SeriesID       string   `json:"seriesId,omitempty"`
}

// Character represents a book character eligible for drafting.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	BookID      string `json:"bookId,omitempty"`
	PlayerID    string `json:"playerId,omitempty"`
}

// Player represents an NBA player comp.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      string `json:"number,omitempty"` // jersey number, "00" when missing
	CurrentTeam string `json:"currentTeam,omitempty"`
	Position    string `json:"position,omitempty"` // free text, classified downstream
	VideoURL    string `json:"videoUrl,omitempty"`
}

// Series represents a book series.
type Series struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TeamName   string `json:"teamName,omitempty"`
	TotalBooks int    `json:"totalBooks,omitempty"`
}

// Stats is a per-game rate record for a player comp.
type Stats struct {
	PPG   float64 `json:"ppg"`
	RPG   float64 `json:"rpg"`
	APG   float64 `json:"apg"`
	SPG   float64 `json:"spg"`
	BPG   float64 `json:"bpg"`
	FGPct float64 `json:"fg_pct"`
	PER   float64 `json:"per"`
}

// DefaultStats is substituted wherever a player has no resolvable stats.
func DefaultStats() Stats {
	return Stats{PPG: 15.0, RPG: 5.0, APG: 3.0, SPG: 1.0, BPG: 0.5, FGPct: 0.450, PER: 15.0}
}

// ResolvedPlayer is a player comp with its season stats attached.
// Stats may be nil when no source could resolve them; consumers fall
// back to DefaultStats.
type ResolvedPlayer struct {
	Player
	Stats *Stats `json:"stats,omitempty"`
}

// EnrichedCharacter is the draft-pool shape: a character with its book
// context and resolved player comp attached. Built once by the pool
// builder, treated as immutable afterwards. Characters without a player
// comp never become EnrichedCharacters.
type EnrichedCharacter struct {
	Character
	BookTitle  string          `json:"bookTitle"`
	BookRating float64         `json:"bookRating"`
	SeriesName string          `json:"seriesName,omitempty"`
	Player     *ResolvedPlayer `json:"player"`
}

// LineupSlot is one of five entries in a finalized lineup, as consumed
// by the simulator and the team name generator.
type LineupSlot struct {
	Book        *Book           `json:"book,omitempty"`
	Character   *Character      `json:"character,omitempty"`
	Player      *ResolvedPlayer `json:"player,omitempty"`
	PlayerStats *Stats          `json:"playerStats,omitempty"`
}

// TeamStats is the aggregate of a lineup: the sum of each player's
// individual per-game averages, the conventional fantasy "team PPG"
// figure. Not a per-game average.
type TeamStats struct {
	PPG float64 `json:"ppg"`
	RPG float64 `json:"rpg"`
	APG float64 `json:"apg"`
}

// BoxScoreLine is one player's row in a simulated game's box score.
type BoxScoreLine struct {
	CharacterName string  `json:"characterName"`
	PlayerName    string  `json:"playerName"`
	Number        string  `json:"number"`
	Points        int     `json:"points"`
	Rebounds      int     `json:"rebounds"`
	Assists       int     `json:"assists"`
	Impact        float64 `json:"impact"`
}

// Highlight is one flavor-text line with team attribution.
type Highlight struct {
	Text string `json:"text"`
	Team string `json:"team"` // "user" or "hof"
	Type string `json:"type"` // scoring, playmaking, defense, momentum
}

// GameResult is the output of one simulation. It is never persisted;
// callers re-simulate for a replay.
type GameResult struct {
	UserScore     int            `json:"userScore"`
	HOFScore      int            `json:"hofScore"`
	UserWon       bool           `json:"userWon"`
	UserBoxScore  []BoxScoreLine `json:"userBoxScore"`
	HOFBoxScore   []BoxScoreLine `json:"hofBoxScore"`
	UserMVP       *BoxScoreLine  `json:"userMVP"`
	HOFMVP        *BoxScoreLine  `json:"hofMVP"`
	GameMVP       *BoxScoreLine  `json:"gameMVP"`
	Highlights    []Highlight    `json:"highlights"`
	UserTeamStats TeamStats      `json:"userTeamStats"`
	HOFTeamStats  TeamStats      `json:"hofTeamStats"`
}
