package nbastats

import (
	"strings"

	"github.com/obaflips/court-reads/internal/models"
)

// fallbackStats covers the league's headline names so the draft board
// works offline or without an API key. Figures are recent-season
// averages, refreshed by hand when they drift too far.
var fallbackStats = map[string]models.Stats{
	"LeBron James":            {PPG: 25.7, RPG: 7.3, APG: 8.3, SPG: 1.3, BPG: 0.5, FGPct: 0.540, PER: 26.1},
	"Stephen Curry":           {PPG: 26.4, RPG: 4.5, APG: 5.1, SPG: 0.9, BPG: 0.4, FGPct: 0.453, PER: 23.8},
	"Kevin Durant":            {PPG: 29.1, RPG: 6.7, APG: 5.0, SPG: 0.7, BPG: 1.4, FGPct: 0.529, PER: 27.3},
	"Giannis Antetokounmpo":   {PPG: 30.4, RPG: 11.5, APG: 5.7, SPG: 1.1, BPG: 1.0, FGPct: 0.553, PER: 29.9},
	"Luka Doncic":             {PPG: 32.4, RPG: 8.6, APG: 8.0, SPG: 1.4, BPG: 0.5, FGPct: 0.487, PER: 28.7},
	"Nikola Jokic":            {PPG: 26.4, RPG: 12.4, APG: 9.0, SPG: 1.3, BPG: 0.7, FGPct: 0.583, PER: 31.3},
	"Joel Embiid":             {PPG: 33.1, RPG: 10.2, APG: 4.2, SPG: 1.0, BPG: 1.7, FGPct: 0.529, PER: 31.5},
	"Jayson Tatum":            {PPG: 26.9, RPG: 8.1, APG: 4.4, SPG: 1.1, BPG: 0.7, FGPct: 0.466, PER: 23.1},
	"Anthony Davis":           {PPG: 24.7, RPG: 12.6, APG: 2.6, SPG: 1.2, BPG: 2.0, FGPct: 0.563, PER: 26.7},
	"Kawhi Leonard":           {PPG: 23.7, RPG: 6.5, APG: 3.9, SPG: 1.6, BPG: 0.4, FGPct: 0.519, PER: 24.2},
	"Damian Lillard":          {PPG: 26.3, RPG: 4.4, APG: 7.3, SPG: 0.9, BPG: 0.3, FGPct: 0.463, PER: 22.1},
	"Jimmy Butler":            {PPG: 20.8, RPG: 5.3, APG: 5.0, SPG: 1.8, BPG: 0.3, FGPct: 0.538, PER: 22.8},
	"Devin Booker":            {PPG: 27.1, RPG: 4.5, APG: 5.5, SPG: 0.8, BPG: 0.4, FGPct: 0.493, PER: 20.9},
	"Trae Young":              {PPG: 26.2, RPG: 3.0, APG: 10.8, SPG: 1.1, BPG: 0.1, FGPct: 0.430, PER: 21.4},
	"Ja Morant":               {PPG: 26.2, RPG: 5.9, APG: 8.1, SPG: 1.1, BPG: 0.3, FGPct: 0.466, PER: 22.0},
	"Donovan Mitchell":        {PPG: 28.3, RPG: 4.2, APG: 4.4, SPG: 1.5, BPG: 0.3, FGPct: 0.449, PER: 21.3},
	"Zion Williamson":         {PPG: 26.0, RPG: 7.0, APG: 4.6, SPG: 1.1, BPG: 0.6, FGPct: 0.589, PER: 26.0},
	"Paul George":             {PPG: 22.6, RPG: 5.2, APG: 3.5, SPG: 1.4, BPG: 0.4, FGPct: 0.454, PER: 18.7},
	"Kyrie Irving":            {PPG: 25.6, RPG: 5.0, APG: 5.2, SPG: 1.1, BPG: 0.5, FGPct: 0.497, PER: 22.9},
	"James Harden":            {PPG: 21.0, RPG: 5.1, APG: 10.7, SPG: 1.2, BPG: 0.5, FGPct: 0.441, PER: 20.5},
	"Russell Westbrook":       {PPG: 15.9, RPG: 5.7, APG: 4.5, SPG: 0.7, BPG: 0.3, FGPct: 0.421, PER: 14.2},
	"Chris Paul":              {PPG: 13.9, RPG: 4.3, APG: 8.9, SPG: 1.5, BPG: 0.1, FGPct: 0.442, PER: 18.9},
	"Draymond Green":          {PPG: 8.6, RPG: 7.2, APG: 6.0, SPG: 1.0, BPG: 0.8, FGPct: 0.527, PER: 14.2},
	"Bam Adebayo":             {PPG: 19.3, RPG: 10.4, APG: 3.2, SPG: 1.2, BPG: 0.8, FGPct: 0.541, PER: 19.8},
	"Rudy Gobert":             {PPG: 14.0, RPG: 12.9, APG: 1.4, SPG: 0.6, BPG: 1.9, FGPct: 0.662, PER: 19.1},
	"Marcus Smart":            {PPG: 11.5, RPG: 3.1, APG: 6.3, SPG: 1.5, BPG: 0.3, FGPct: 0.417, PER: 13.1},
	"Klay Thompson":           {PPG: 17.9, RPG: 3.3, APG: 2.3, SPG: 0.6, BPG: 0.4, FGPct: 0.438, PER: 14.7},
	"DeMar DeRozan":           {PPG: 24.5, RPG: 4.3, APG: 5.1, SPG: 1.0, BPG: 0.3, FGPct: 0.502, PER: 21.2},
	"Pascal Siakam":           {PPG: 21.5, RPG: 7.5, APG: 5.8, SPG: 0.6, BPG: 0.7, FGPct: 0.473, PER: 18.4},
	"Jalen Brunson":           {PPG: 28.7, RPG: 3.6, APG: 6.7, SPG: 0.9, BPG: 0.2, FGPct: 0.479, PER: 22.5},
	"Tyrese Haliburton":       {PPG: 20.1, RPG: 3.9, APG: 10.9, SPG: 1.2, BPG: 0.5, FGPct: 0.476, PER: 21.0},
	"Shai Gilgeous-Alexander": {PPG: 31.4, RPG: 5.5, APG: 6.2, SPG: 2.0, BPG: 0.9, FGPct: 0.535, PER: 29.2},
	"De'Aaron Fox":            {PPG: 26.6, RPG: 4.5, APG: 5.6, SPG: 2.0, BPG: 0.4, FGPct: 0.510, PER: 21.7},
	"Jaren Jackson Jr.":       {PPG: 22.3, RPG: 5.8, APG: 2.0, SPG: 1.0, BPG: 3.0, FGPct: 0.494, PER: 20.8},
	"Mikal Bridges":           {PPG: 19.9, RPG: 4.5, APG: 3.3, SPG: 1.1, BPG: 0.4, FGPct: 0.447, PER: 15.0},
	"Victor Wembanyama":       {PPG: 21.4, RPG: 10.6, APG: 3.9, SPG: 1.2, BPG: 3.6, FGPct: 0.465, PER: 23.0},
}

// lookupFallback is case-insensitive to tolerate spreadsheet typos.
func lookupFallback(name string) (models.Stats, bool) {
	if stats, ok := fallbackStats[name]; ok {
		return stats, true
	}
	for key, stats := range fallbackStats {
		if strings.EqualFold(key, name) {
			return stats, true
		}
	}
	return models.Stats{}, false
}

// CalculatePER approximates a player efficiency rating from box-score
// rates when the real figure is unavailable.
func CalculatePER(s models.Stats) float64 {
	return s.PPG + 0.7*s.RPG + s.APG + 1.5*s.SPG + 1.5*s.BPG + 10*s.FGPct
}
