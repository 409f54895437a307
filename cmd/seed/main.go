package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/okisetiana/blog-api/config"
	"github.com/okisetiana/blog-api/pkg/helpers"
)

// Seeds two demo accounts and 22 articles covering every publication state:
// 18 published in the past, 1 draft, 3 scheduled. Idempotent via upserts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	authorID := seedUser(db, "mockauthor", "mockauthor@example.com", "mock123", "AUTHOR")
	readerID := seedUser(db, "demoreader", "demoreader@example.com", "123456", "READER")
	fmt.Printf("seeded users: author=%d reader=%d\n", authorID, readerID)

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		log.Fatalf("failed to count articles: %v", err)
	}
	if count > 0 {
		fmt.Println("articles already present; skipping article seed")
		return
	}

	now := time.Now()
	past := now.AddDate(0, 0, -30)
	future := now.AddDate(0, 0, 2)

	categories := []string{"Tech", "Science", "Travel", "Culture", "Sport"}
	tagSets := []string{"java,spring,boot", "react,typescript", "travel,photo", "culture,art", "sport,health"}

	for i := 1; i <= 22; i++ {
		title := fmt.Sprintf("Demo article #%d", i)
		if i%2 == 0 {
			title = fmt.Sprintf("Demo article #%d with a longer title for sorting", i)
		}
		content := fmt.Sprintf("Content of article %d. Exercises keyword search, pagination, sorting, and filters.", i)

		var publishedAt *time.Time
		switch {
		case i <= 18:
			t := past.AddDate(0, 0, i)
			publishedAt = &t
		case i == 19:
			publishedAt = nil // draft
		default:
			t := future.Add(time.Duration(i) * time.Hour) // scheduled
			publishedAt = &t
		}

		_, err := db.Exec(`
			INSERT INTO articles (title, content, created_at, updated_at, published_at,
				view_count, author_id, category, tags, featured, pinned)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			title, content,
			past.AddDate(0, 0, i), past.AddDate(0, 0, i).Add(time.Hour),
			publishedAt,
			int64(i*10), authorID,
			categories[i%len(categories)], tagSets[i%len(tagSets)],
			i <= 3, i == 1 || i == 2,
		)
		if err != nil {
			log.Fatalf("failed to seed article %d: %v", i, err)
		}
	}
	fmt.Println("seeded 22 articles (18 published, 1 draft, 3 scheduled)")
}

func seedUser(db *sql.DB, username, email, password, role string) int64 {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, username, email, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", username, err)
	}
	return id
}
