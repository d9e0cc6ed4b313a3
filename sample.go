package main

import "github.com/obaflips/court-reads/internal/models"

// sampleLibrary is a small built-in shelf for running without an
// Airtable base. Player comps use real names so the fallback stats
// table resolves them.
func sampleLibrary() ([]models.Book, []models.Character, []models.Player, []models.Series) {
	type row struct {
		bookID, title, author string
		rating                float64
		finished              string
		seriesID              string
		charID, character     string
		tagline               string
		playerID, player      string
		number, position      string
	}
	rows := []row{
		{"b1", "The Final Empire", "Brandon Sanderson", 5, "2026-03-01", "s1",
			"c1", "Vin", "Mist-born scoring guard", "p1", "Stephen Curry", "30", "PG"},
		{"b2", "Six of Crows", "Leigh Bardugo", 5, "2026-01-10", "",
			"c2", "Kaz Brekker", "Scheming floor general", "p2", "Chris Paul", "3", "PG"},
		{"b3", "The Name of the Wind", "Patrick Rothfuss", 4.5, "2025-11-20", "",
			"c3", "Kvothe", "Does a bit of everything", "p3", "Luka Doncic", "77", "SG"},
		{"b4", "The Way of Kings", "Brandon Sanderson", 4.5, "2026-02-14", "s2",
			"c4", "Kaladin", "Windrunner in transition", "p4", "Giannis Antetokounmpo", "34", "PF"},
		{"b5", "A Game of Thrones", "George R.R. Martin", 4, "2025-09-05", "",
			"c5", "Jon Snow", "Knows defense, at least", "p5", "Jayson Tatum", "0", "SF"},
		{"b6", "The Hobbit", "J.R.R. Tolkien", 3.5, "2025-06-30", "",
			"c6", "Bilbo Baggins", "Undersized rim protector", "p6", "Rudy Gobert", "27", "C"},
		{"b7", "Dune", "Frank Herbert", 4, "2025-04-18", "",
			"c7", "Paul Atreides", "Sees every passing lane", "p7", "Nikola Jokic", "15", "C"},
		{"b8", "Project Hail Mary", "Andy Weir", 4.5, "2025-12-12", "",
			"c8", "Ryland Grace", "Problem-solving wing", "p8", "Jimmy Butler", "22", "SF"},
		{"b9", "The Lies of Locke Lamora", "Scott Lynch", 4, "2025-02-02", "",
			"c9", "Locke Lamora", "All handles, no conscience", "p9", "Kyrie Irving", "11", "PG"},
		{"b10", "The Well of Ascension", "Brandon Sanderson", 4, "2025-08-21", "s1",
			"c10", "Sazed", "Plays angry in the paint", "p10", "Anthony Davis", "3", "PF"},
	}

	series := []models.Series{
		{ID: "s1", Name: "Mistborn", TotalBooks: 3},
		{ID: "s2", Name: "The Stormlight Archive", TotalBooks: 4},
	}

	var books []models.Book
	var characters []models.Character
	var players []models.Player
	for _, r := range rows {
		books = append(books, models.Book{
			ID: r.bookID, Title: r.title, Author: r.author,
			Rating: r.rating, DateFinished: r.finished, SeriesID: r.seriesID,
			CharacterIDs: []string{r.charID},
		})
		characters = append(characters, models.Character{
			ID: r.charID, Name: r.character, Tagline: r.tagline,
			BookID: r.bookID, PlayerID: r.playerID,
		})
		players = append(players, models.Player{
			ID: r.playerID, Name: r.player, Number: r.number, Position: r.position,
		})
	}
	return books, characters, players, series
}
