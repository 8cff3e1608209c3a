package store

import (
	"context"
	"fmt"

	"unicode/utf8"

	"github.com/hward/blogsmith/internal/models"
	"github.com/hward/blogsmith/pkg/llm"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type SnapshotStoreConfig struct {
	ConnString  string
	TableName   string
	VectorDim   int
	BatchSize   int
	SearchLimit int
}

// SnapshotStore persists scraped competitor pages in Postgres together
// with a content embedding, so past analyses can be searched for pages
// similar to a new draft.
type SnapshotStore struct {
	config   SnapshotStoreConfig
	pool     *pgxpool.Pool
	embedder llm.Embedder
}

func NewWithConfig(config SnapshotStoreConfig, embedder llm.Embedder) (*SnapshotStore, error) {
	if config.TableName == "" {
		config.TableName = "page_snapshots"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	if config.SearchLimit == 0 {
		config.SearchLimit = 5
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	ss := &SnapshotStore{
		config:   config,
		pool:     pool,
		embedder: embedder,
	}

	if err := ss.initialize(); err != nil {
		pool.Close()
		return nil, err
	}

	return ss, nil
}

func (ss *SnapshotStore) initialize() error {
	ctx := context.Background()

	_, err := ss.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			content TEXT,
			word_count INTEGER,
			embedding vector(%d),
			metadata JSONB
		)`, ss.config.TableName, ss.config.VectorDim)

	_, err = ss.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		ss.config.TableName, ss.config.TableName)

	_, err = ss.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Store embeds and upserts the given snapshots in one transaction.
func (ss *SnapshotStore) Store(snaps []models.PageSnapshot) error {
	ctx := context.Background()

	tx, err := ss.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, url, title, content, word_count, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			word_count = EXCLUDED.word_count,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata`,
		ss.config.TableName)

	for _, snap := range snaps {
		cleanContent := sanitizeUTF8(snap.Content)

		embedding, err := ss.embedText(ctx, cleanContent)
		if err != nil {
			return fmt.Errorf("failed to create embedding: %v", err)
		}

		_, err = tx.Exec(ctx, stmt,
			snap.ID,
			snap.URL,
			sanitizeUTF8(snap.Title),
			cleanContent,
			snap.WordCount,
			pgvector.NewVector(embedding),
			snap.Metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// Similar returns the stored pages whose content is closest to text.
func (ss *SnapshotStore) Similar(text string, limit int) ([]models.PageSnapshot, error) {
	ctx := context.Background()

	if limit == 0 {
		limit = ss.config.SearchLimit
	}

	embedding, err := ss.embedText(ctx, sanitizeUTF8(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query text: %v", err)
	}

	query := fmt.Sprintf(`
		SELECT id, url, title, content, word_count, metadata
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		ss.config.TableName)

	rows, err := ss.pool.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %v", err)
	}
	defer rows.Close()

	var snaps []models.PageSnapshot
	for rows.Next() {
		var snap models.PageSnapshot
		err := rows.Scan(
			&snap.ID,
			&snap.URL,
			&snap.Title,
			&snap.Content,
			&snap.WordCount,
			&snap.Metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		snaps = append(snaps, snap)
	}

	return snaps, nil
}

func (ss *SnapshotStore) embedText(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := ss.embedder.Embed.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return ss.embedder.FlattenEmbeddings(embeddings), nil
}

func (ss *SnapshotStore) Close() {
	if ss.pool != nil {
		ss.pool.Close()
	}
}

func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
