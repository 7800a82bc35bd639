package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sportspack/internal/domain"
	"sportspack/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// ErrDuplicateRemoteID is returned when a sibling already carries the
// same remote ID
var ErrDuplicateRemoteID = errors.New("duplicate remote ID under parent")

// Store implements ports.TreeStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements TreeStore and TreeLister
var (
	_ ports.TreeStore  = (*Store)(nil)
	_ ports.TreeLister = (*Store)(nil)
)

// NewStore creates a new, unopened SQLite store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Open initializes the database at dbPath. ":memory:" opens a private
// in-memory database.
func (s *Store) Open(dbPath string) error {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	inMemory := dbPath == ":memory:"
	dsn := dbPath
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if inMemory {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	s.db = db

	// Pragmas + schema in a single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			parent_id TEXT REFERENCES nodes(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			logo TEXT NOT NULL DEFAULT '',
			remote_provider TEXT NOT NULL DEFAULT '',
			remote_id TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_nodes_parent_remote
			ON nodes(parent_id, remote_id)
			WHERE remote_id != '' AND type = 'unit';
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path the store was opened with
func (s *Store) Path() string {
	return s.dbPath
}

// DefaultPath returns the database location under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "sportspack", "sportspack.db")
}

const nodeColumns = `id, type, parent_id, title, content, logo, remote_provider, remote_id`

// GetNode retrieves a node by ID, or nil if it does not exist
func (s *Store) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE id = ?`, id)

	node, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

// GetChildren returns the container children of parentID
func (s *Store) GetChildren(ctx context.Context, parentID string) ([]*domain.Node, error) {
	return s.queryNodes(ctx, `
		SELECT `+nodeColumns+`
		FROM nodes WHERE parent_id = ? AND type = ?
	`, parentID, domain.NodeTypeContainer.StorageKey())
}

// Roots returns every container without a parent
func (s *Store) Roots(ctx context.Context) ([]*domain.Node, error) {
	return s.queryNodes(ctx, `
		SELECT `+nodeColumns+`
		FROM nodes WHERE parent_id IS NULL AND type = ?
	`, domain.NodeTypeContainer.StorageKey())
}

// CreateNode inserts node under parentID and returns the generated ID
func (s *Store) CreateNode(ctx context.Context, parentID string, node *domain.Node) (string, error) {
	id := uuid.NewString()
	ts := s.now().Unix()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nodes (id, type, parent_id, title, content, logo, remote_provider, remote_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, node.Type.StorageKey(), nullString(parentID), node.Title, node.Content,
		node.Value(domain.AttrLogo), node.Value(domain.AttrRemoteProvider), node.Value(domain.AttrRemoteID),
		ts, ts)
	if err != nil {
		return "", translateError(err)
	}
	return id, nil
}

// UpdateNode applies a partial update to an existing node
func (s *Store) UpdateNode(ctx context.Context, id string, update domain.NodeUpdate) error {
	var sets []string
	var args []any

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *update.Content)
	}
	for _, attr := range domain.Attributes {
		if v, ok := update.Attributes[attr]; ok {
			// Column names come from the closed attribute set
			sets = append(sets, attr.Key()+" = ?")
			args = append(args, v)
		}
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, s.now().Unix(), id)

	res, err := s.db.ExecContext(ctx, `UPDATE nodes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("node %s does not exist", id)
	}
	return nil
}

func (s *Store) queryNodes(ctx context.Context, query string, args ...any) ([]*domain.Node, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*domain.Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(row scanner) (*domain.Node, error) {
	var (
		node                         domain.Node
		nodeType                     string
		parentID                     sql.NullString
		logo, remoteProvider, remote string
	)
	if err := row.Scan(&node.ID, &nodeType, &parentID, &node.Title, &node.Content, &logo, &remoteProvider, &remote); err != nil {
		return nil, err
	}

	node.Type, _ = domain.ParseNodeType(nodeType)
	node.ParentID = parentID.String
	node.Attributes = map[domain.Attribute]string{
		domain.AttrLogo:           logo,
		domain.AttrRemoteProvider: remoteProvider,
		domain.AttrRemoteID:       remote,
	}
	return &node, nil
}

// translateError maps constraint violations onto store errors
func translateError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: nodes.parent_id, nodes.remote_id"):
		return fmt.Errorf("%w: %v", ErrDuplicateRemoteID, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("parent does not exist: %w", err)
	}
	return err
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
