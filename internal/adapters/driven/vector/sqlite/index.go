// Package sqlite provides a vector index persisted in a local SQLite database.
// Similarity search is a brute-force cosine scan in Go, which is fine at the
// batch sizes this tool indexes.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/citewise-labs/citewise-cli/internal/adapters/driven/vector/sqlite/migrations"
	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultFileName is the database file created under the data directory.
const DefaultFileName = "index.db"

// Index is a SQLite-backed implementation of driven.VectorIndex.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex creates a new SQLite vector index at the specified data directory.
// If dataDir is empty, defaults to ~/.citewise/index.db.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".citewise")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DefaultFileName)

	// Open database with WAL mode for better concurrency. Foreign keys
	// must be on for every pooled connection: DeleteCollection relies on
	// the cascade to drop the collection's records.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	x := &Index{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := x.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return x, nil
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// migrate runs all pending migrations.
func (x *Index) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := x.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// EnsureCollection creates the collection if it does not exist.
func (x *Index) EnsureCollection(ctx context.Context, name string, dims int) error {
	if dims <= 0 {
		return fmt.Errorf("sqlite: collection %s: dimensions must be positive, got %d", name, dims)
	}

	_, err := x.db.ExecContext(ctx, `
		INSERT INTO collections (name, dimensions) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, dims)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	var existing int
	row := x.db.QueryRowContext(ctx, "SELECT dimensions FROM collections WHERE name = ?", name)
	if err := row.Scan(&existing); err != nil {
		return fmt.Errorf("querying collection: %w", err)
	}
	if existing != dims {
		return fmt.Errorf("sqlite: collection %s has dimension %d, want %d: %w",
			name, existing, dims, domain.ErrDimensionMismatch)
	}
	return nil
}

// Upsert writes records to the collection in a single transaction.
// The batch is validated against the collection dimension before any
// record is written.
func (x *Index) Upsert(ctx context.Context, name string, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	dims, err := x.collectionDimensions(ctx, name)
	if err != nil {
		return err
	}

	for _, record := range records {
		if len(record.Vector) != dims {
			return fmt.Errorf("sqlite: record %s has dimension %d, want %d: %w",
				record.ID, len(record.Vector), dims, domain.ErrDimensionMismatch)
		}
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, collection, vector, text, file_name, chunk_index, section_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collection = excluded.collection,
			vector = excluded.vector,
			text = excluded.text,
			file_name = excluded.file_name,
			chunk_index = excluded.chunk_index,
			section_path = excluded.section_path
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		vectorBlob := float32SliceToBytes(record.Vector)
		if _, err := stmt.ExecContext(ctx, record.ID, name, vectorBlob,
			record.Text, record.FileName, record.ChunkIndex, record.SectionPath); err != nil {
			return fmt.Errorf("saving record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search returns the k records most similar to the query vector by cosine
// similarity in descending order. Rows are scanned in rowid order so equal
// scores keep insertion order. A missing collection yields no records.
func (x *Index) Search(ctx context.Context, name string, vector []float32, k int) ([]domain.ScoredRecord, error) {
	if k <= 0 {
		return nil, nil
	}

	dims, err := x.collectionDimensions(ctx, name)
	if errors.Is(err, domain.ErrCollectionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(vector) != dims {
		return nil, fmt.Errorf("sqlite: query vector has dimension %d, want %d: %w",
			len(vector), dims, domain.ErrDimensionMismatch)
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT id, vector, text, file_name, chunk_index, section_path
		FROM records WHERE collection = ?
		ORDER BY rowid
	`, name)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var scored []domain.ScoredRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.IndexRecord
		var vectorBlob []byte
		if err := rows.Scan(&record.ID, &vectorBlob, &record.Text,
			&record.FileName, &record.ChunkIndex, &record.SectionPath); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		record.Vector = bytesToFloat32Slice(vectorBlob)

		scored = append(scored, domain.ScoredRecord{
			Record: record,
			Score:  cosineSimilarity(vector, record.Vector),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	// Stable sort keeps insertion order for equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// DeleteCollection removes the collection; its records go with it via
// the foreign key cascade. Deleting a missing collection is not an error.
func (x *Index) DeleteCollection(ctx context.Context, name string) error {
	_, err := x.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// Ping validates the database is reachable.
func (x *Index) Ping(ctx context.Context) error {
	return x.db.PingContext(ctx)
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// collectionDimensions looks up the dimension fixed for a collection.
func (x *Index) collectionDimensions(ctx context.Context, name string) (int, error) {
	var dims int
	row := x.db.QueryRowContext(ctx, "SELECT dimensions FROM collections WHERE name = ?", name)
	if err := row.Scan(&dims); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("sqlite: %w: %s", domain.ErrCollectionNotFound, name)
		}
		return 0, fmt.Errorf("querying collection: %w", err)
	}
	return dims, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero vectors score 0 against everything.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
