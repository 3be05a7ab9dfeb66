// Command generate_demo creates a demo database with a learner, reading
// sessions and translations from public domain Brazilian literature.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/database"
	"github.com/mrlokans/decypher/internal/database/readingsessions"
	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/database/users"
	"github.com/mrlokans/decypher/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoSentence struct {
	Source      string
	Translation string
}

type demoBook struct {
	Title     string
	Pages     float64
	Duration  time.Duration
	Sentences []demoSentence
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	english, err := db.GetLanguageByShortCode("en")
	if err != nil {
		log.Fatalf("Missing seeded language: %v", err)
	}
	portuguese, err := db.GetLanguageByShortCode("pt")
	if err != nil {
		log.Fatalf("Missing seeded language: %v", err)
	}

	user, token, err := auth.NewService(users.NewRepository(db.DB)).CreateUser("demo", "demo@example.com", english.ID, portuguese.ID)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	sessions := readingsessions.NewRepository(db.DB)
	store := translations.NewRepository(db.DB)

	start := time.Now().UTC().Add(-7 * 24 * time.Hour)
	count := 0
	for i, book := range getPublicDomainBooks() {
		session := &entities.ReadingSession{
			UserID:    user.ID,
			BookTitle: book.Title,
			Pages:     book.Pages,
			Duration:  book.Duration,
			CreatedAt: start.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := sessions.Create(session); err != nil {
			log.Printf("Failed to save reading session %s: %v", book.Title, err)
			continue
		}

		for j, s := range book.Sentences {
			count++
			t := &entities.Translation{
				UserID:           user.ID,
				ReadingSessionID: session.ID,
				SourceText:       s.Source,
				TranslatedText:   s.Translation,
				AudioAssetRef:    fmt.Sprintf("/media/audio/demo-%03d.mp3", count),
				SourceLanguageID: portuguese.ID,
				TargetLanguageID: english.ID,
				CreatedAt:        session.CreatedAt.Add(time.Duration(j+1) * time.Minute),
			}
			if err := store.Create(t); err != nil {
				log.Printf("Failed to save translation %q: %v", s.Source, err)
			}
		}
		log.Printf("Saved: %s (%d translations)", book.Title, len(book.Sentences))
	}

	log.Println("Demo database generated successfully!")
	log.Printf("Demo user token: %s", token)
}

// getPublicDomainBooks returns excerpts from works in the public domain.
// Audio refs point at files that do not exist; the demo makes no external calls.
func getPublicDomainBooks() []demoBook {
	return []demoBook{
		{
			Title:    "Dom Casmurro",
			Pages:    14,
			Duration: 42 * time.Minute,
			Sentences: []demoSentence{
				{"Uma noite destas, vindo da cidade para o Engenho Novo, encontrei no trem da Central um rapaz aqui do bairro.", "One night recently, coming from the city to Engenho Novo, I met a young man from the neighbourhood on the Central train."},
				{"Não consultes dicionários.", "Do not consult dictionaries."},
				{"Olhos de cigana oblíqua e dissimulada.", "Eyes of a gypsy, oblique and sly."},
				{"A vida é uma ópera e uma grande ópera.", "Life is an opera, and a grand opera."},
			},
		},
		{
			Title:    "Memórias Póstumas de Brás Cubas",
			Pages:    9,
			Duration: 30 * time.Minute,
			Sentences: []demoSentence{
				{"Ao verme que primeiro roeu as frias carnes do meu cadáver dedico como saudosa lembrança estas memórias póstumas.", "To the worm that first gnawed the cold flesh of my corpse I dedicate, as a fond remembrance, these posthumous memoirs."},
				{"Não tive filhos, não transmiti a nenhuma criatura o legado da nossa miséria.", "I had no children, I passed on to no creature the legacy of our misery."},
				{"Algum tempo hesitei se devia abrir estas memórias pelo princípio ou pelo fim.", "For some time I hesitated whether to open these memoirs at the beginning or at the end."},
			},
		},
		{
			Title:    "O Cortiço",
			Pages:    6,
			Duration: 18 * time.Minute,
			Sentences: []demoSentence{
				{"Eram cinco horas da manhã e o cortiço acordava.", "It was five in the morning and the tenement was waking up."},
				{"O rumor crescia, condensando-se.", "The murmur grew, thickening."},
			},
		},
	}
}
