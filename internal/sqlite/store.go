package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

const (
	driverName = "sqlite"

	// busyTimeoutMS bounds how long a second process waits on the open lock.
	busyTimeoutMS = 5000
)

// openMu serializes Open across Store instances in this process. Across
// processes the BEGIN IMMEDIATE in Open does the same job.
var openMu sync.Mutex

// Compile-time check that Store satisfies the Catalog interface.
var _ types.Catalog = (*Store)(nil)

// Store implements types.Catalog on a single SQLite file.
type Store struct {
	mu   sync.RWMutex
	open bool
	path string
	db   *sqlx.DB

	id     string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for lifecycle and write events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an unopened Store. Call Open with a Config to use it.
func NewStore(opts ...Option) *Store {
	s := &Store{
		id:     newInstanceID(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("store", s.id))
	return s
}

// newInstanceID returns a UUID v7 identifying this Store in logs.
func newInstanceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Path returns the database file path, or "" before Open.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Open creates DataDir and the database file if needed, then brings the
// schema to config.Version: a new file gets the pets table, an older one is
// upgraded, an equal one is left alone and a newer one is refused.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %w", types.ErrStorageUnavailable, err)
	}
	path := filepath.Join(dataDir, config.GetFileName())

	openMu.Lock()
	defer openMu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolve path: %w", types.ErrStorageUnavailable, err)
	}

	db, err := sqlx.Open(driverName, dsn(abs))
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}

	s.db = db
	s.path = path

	if err := s.prepareLocked(ctx, config.GetVersion()); err != nil {
		db.Close()
		s.db = nil
		s.path = ""
		return err
	}

	s.open = true
	s.logger.Debug("catalog opened", slog.String("path", path), slog.Int("version", config.GetVersion()))
	return nil
}

// dsn builds the modernc connection string. The busy timeout makes a
// concurrent opener wait instead of failing with SQLITE_BUSY; WAL lets an
// open RowSet coexist with a write on another connection. path must be
// absolute; it is escaped so '?', '#' and '%' in a directory name stay part
// of the file name.
func dsn(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: fmt.Sprintf("_pragma=busy_timeout(%d)&_pragma=journal_mode(wal)", busyTimeoutMS),
	}
	return u.String()
}

// prepareLocked runs the version check and the create or upgrade hook inside
// one immediate transaction on a dedicated connection. The caller holds s.mu.
func (s *Store) prepareLocked(ctx context.Context, version int) (err error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("%w: begin: %w", types.ErrStorageUnavailable, err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	current, err := userVersion(ctx, conn)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, err)
	}

	switch {
	case current == 0:
		if err := createSchema(ctx, conn); err != nil {
			return err
		}
		if version > types.SchemaVersion {
			if err := upgradeSchema(ctx, conn, types.SchemaVersion, version); err != nil {
				return err
			}
		}
		s.logger.Debug("schema created", slog.String("table", types.TablePets), slog.Int("version", version))
	case current < version:
		if err := upgradeSchema(ctx, conn, current, version); err != nil {
			return err
		}
		s.logger.Debug("schema upgraded", slog.Int("from", current), slog.Int("to", version))
	case current > version:
		return fmt.Errorf("%w: file is version %d, declared %d", types.ErrSchemaDowngrade, current, version)
	}

	if current != version {
		if err := setUserVersion(ctx, conn, version); err != nil {
			return err
		}
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Close releases the database handle. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	s.open = false
	db := s.db
	s.db = nil
	if err := db.Close(); err != nil {
		return err
	}
	s.logger.Debug("catalog closed", slog.String("path", s.path))
	return nil
}

// EnsureSchema creates the pets table if it does not exist. Open already
// does this for a new file; calling it again changes nothing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}
	return createSchema(ctx, s.db)
}

// UpgradeSchema runs the upgrade hook from oldVersion to newVersion and
// records newVersion in the file. Existing rows are left untouched.
func (s *Store) UpgradeSchema(ctx context.Context, oldVersion, newVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}
	if newVersion < oldVersion {
		return fmt.Errorf("%w: %d to %d", types.ErrSchemaDowngrade, oldVersion, newVersion)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", types.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	if err := upgradeSchema(ctx, tx, oldVersion, newVersion); err != nil {
		return err
	}
	if err := setUserVersion(ctx, tx, newVersion); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upgrade: %w", err)
	}

	s.logger.Debug("upgrade hook ran", slog.Int("from", oldVersion), slog.Int("to", newVersion))
	return nil
}

// Insert writes one row built from values and returns the assigned id.
// Only the supplied columns are named in the statement, so omitted columns
// take their defaults or trip a NOT NULL constraint.
func (s *Store) Insert(ctx context.Context, values types.Values) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return 0, types.ErrStoreClosed
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: no columns supplied", types.ErrInvalidValues)
	}

	cols := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	// Schema order keeps the generated statement stable.
	for _, c := range types.PetColumns {
		v, ok := values[c]
		if !ok {
			continue
		}
		if c == types.ColumnID {
			return 0, fmt.Errorf("%w: %s is assigned by the store", types.ErrInvalidValues, types.ColumnID)
		}
		cols = append(cols, c)
		args = append(args, v)
	}
	if len(cols) != len(values) {
		for k := range values {
			if !types.IsPetColumn(k) {
				return 0, fmt.Errorf("%w: %q", types.ErrUnknownColumn, k)
			}
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		types.TablePets, strings.Join(cols, ", "), placeholders(len(cols)))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	s.logger.Debug("pet inserted", slog.Int64("id", id))
	return id, nil
}

// QueryAll validates the projection, then returns a lazy RowSet over every
// row of the pets table. A column named twice is selected once, at its
// first position.
func (s *Store) QueryAll(ctx context.Context, columns ...string) (types.RowSet, error) {
	if len(columns) == 0 {
		columns = types.PetColumns
	}
	projection := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !types.IsPetColumn(c) {
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownColumn, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		projection = append(projection, c)
	}
	columns = projection

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), types.TablePets)
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	return newRowSet(rows, columns), nil
}

// Get returns the pet with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*types.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	var p types.Pet
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(types.PetColumns, ", "), types.TablePets, types.ColumnID)
	err := s.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// Count returns the number of rows in the pets table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return 0, types.ErrStoreClosed
	}

	var n int64
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+types.TablePets); err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// mapError translates engine errors into catalog sentinels. Constraint
// failures and a missing table become ErrConstraintViolation; everything
// else is returned as is.
func mapError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return fmt.Errorf("%w: %w", types.ErrConstraintViolation, err)
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "constraint failed") || strings.Contains(msg, "no such table") {
		return fmt.Errorf("%w: %w", types.ErrConstraintViolation, err)
	}
	return err
}
