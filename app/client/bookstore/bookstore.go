// Package bookstore implements the book-search and user-lookup collaborators
// on top of a local sqlite database.
package bookstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bookswap/app/config"
	"bookswap/app/service/responder"

	"github.com/google/uuid"
	"github.com/samber/do"

	_ "modernc.org/sqlite"
)

const searchLimit = 10

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	author     TEXT NOT NULL,
	genre      TEXT NOT NULL,
	condition  TEXT NOT NULL DEFAULT 'good',
	is_active  INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	is_new    INTEGER NOT NULL DEFAULT 0,
	joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

var _ responder.BookSearch = (*Client)(nil)
var _ responder.UserDirectory = (*Client)(nil)

type Client struct {
	db *sql.DB
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	client, err := Open(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	if err := client.seed(context.Background()); err != nil {
		return nil, err
	}

	return client, nil
}

func Open(path string) (*Client, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) AddBook(ctx context.Context, book responder.Book, createdAt time.Time) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, genre, condition, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, book.Genre, book.Condition, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

func (c *Client) AddUser(ctx context.Context, user responder.UserProfile) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO users (id, name, is_new) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.New)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (c *Client) ByTitle(ctx context.Context, text string) ([]responder.Book, error) {
	return c.search(ctx, "title", text)
}

func (c *Client) ByAuthor(ctx context.Context, text string) ([]responder.Book, error) {
	return c.search(ctx, "author", text)
}

func (c *Client) ByGenre(ctx context.Context, text string) ([]responder.Book, error) {
	return c.search(ctx, "genre", text)
}

func (c *Client) search(ctx context.Context, column, text string) ([]responder.Book, error) {
	query := fmt.Sprintf(
		`SELECT id, title, author, genre, condition FROM books
		 WHERE is_active = 1 AND %s LIKE ? COLLATE NOCASE
		 ORDER BY created_at DESC, id DESC LIMIT %d`, column, searchLimit)

	rows, err := c.db.QueryContext(ctx, query, "%"+text+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search books by %s: %w", column, err)
	}
	defer rows.Close()

	result := make([]responder.Book, 0)
	for rows.Next() {
		var book responder.Book
		if err = rows.Scan(&book.ID, &book.Title, &book.Author, &book.Genre, &book.Condition); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		result = append(result, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading books: %w", err)
	}

	return result, nil
}

// Get resolves a user; a missing row means anonymous, not an error.
func (c *Client) Get(ctx context.Context, userID string) (*responder.UserProfile, error) {
	var user responder.UserProfile

	err := c.db.QueryRowContext(ctx,
		`SELECT id, name, is_new FROM users WHERE id = ?`, userID).
		Scan(&user.ID, &user.Name, &user.New)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return &user, nil
}

// seed inserts a starter catalogue on first run so searches have something
// to find before the community adds books.
func (c *Client) seed(ctx context.Context) error {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}

	if count > 0 {
		return nil
	}

	starter := []responder.Book{
		{Title: "The Alchemist", Author: "Paulo Coelho", Genre: "fiction", Condition: "good"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "romance", Condition: "fair"},
		{Title: "Gone Girl", Author: "Gillian Flynn", Genre: "mystery", Condition: "excellent"},
		{Title: "Harry Potter and the Philosopher's Stone", Author: "J K Rowling", Genre: "fantasy", Condition: "good"},
		{Title: "Sapiens", Author: "Yuval Noah Harari", Genre: "science", Condition: "new"},
		{Title: "The Lean Startup", Author: "Eric Ries", Genre: "business", Condition: "good"},
		{Title: "Atomic Habits", Author: "James Clear", Genre: "self-help", Condition: "excellent"},
		{Title: "Becoming", Author: "Michelle Obama", Genre: "biography", Condition: "good"},
	}

	now := time.Now()
	for i, book := range starter {
		if err := c.AddBook(ctx, book, now.Add(-time.Duration(i)*time.Minute)); err != nil {
			return err
		}
	}

	slog.Info("Seeded starter book catalogue", "count", len(starter))

	return nil
}
