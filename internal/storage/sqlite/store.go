package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/webdeskos/backend/internal/infrastructure/logging"
	"github.com/webdeskos/backend/internal/shared/errs"
	"github.com/webdeskos/backend/internal/shared/id"
	"github.com/webdeskos/backend/internal/shared/types"
)

// Default aggregate values for lazily created desktops.
const (
	DefaultWallpaper       = "default"
	DefaultTheme           = "dark"
	DefaultTaskbarPosition = types.TaskbarBottom
)

const schema = `
CREATE TABLE IF NOT EXISTS desktop_states (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL UNIQUE,
	wallpaper        TEXT NOT NULL,
	theme            TEXT NOT NULL,
	taskbar_position TEXT NOT NULL,
	taskbar_autohide INTEGER NOT NULL DEFAULT 0,
	pinned_apps      TEXT NOT NULL DEFAULT '[]',
	settings         TEXT NOT NULL DEFAULT '{}',
	version          INTEGER NOT NULL DEFAULT 1,
	updated_at       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS windows (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	desktop_state_id TEXT NOT NULL REFERENCES desktop_states(id) ON DELETE CASCADE,
	app_id           TEXT NOT NULL,
	title            TEXT NOT NULL DEFAULT '',
	icon             TEXT NOT NULL DEFAULT '',
	x                INTEGER NOT NULL,
	y                INTEGER NOT NULL,
	width            INTEGER NOT NULL,
	height           INTEGER NOT NULL,
	state            TEXT NOT NULL DEFAULT 'normal',
	saved_x          INTEGER,
	saved_y          INTEGER,
	saved_width      INTEGER,
	saved_height     INTEGER,
	previous_state   TEXT,
	z_index          INTEGER NOT NULL DEFAULT 100,
	focused          INTEGER NOT NULL DEFAULT 0,
	app_state        TEXT NOT NULL DEFAULT '{}',
	updated_at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_windows_user ON windows(user_id);
CREATE INDEX IF NOT EXISTS idx_windows_state ON windows(desktop_state_id);
`

// Store persists desktop aggregates and window rows.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// Open opens (or creates) the database at path and bootstraps the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string, logger *logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Database("open", err)
	}
	// A single connection keeps :memory: databases coherent and serializes
	// writers, which SQLite wants anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		db.Close()
		return nil, errs.Database("pragma", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Database("schema", err)
	}

	logger.Info("Storage opened", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetOrCreateState loads the per-user aggregate, creating it with defaults
// on first access.
func (s *Store) GetOrCreateState(ctx context.Context, userID string) (*types.DesktopState, error) {
	state, err := s.getState(ctx, s.db, userID)
	if err == nil {
		return state, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	state = defaultState(userID)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO desktop_states
			(id, user_id, wallpaper, theme, taskbar_position, taskbar_autohide, pinned_apps, settings, version, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING`,
		state.ID, state.UserID, state.Wallpaper, state.Theme, state.TaskbarPosition,
		boolToInt(state.TaskbarAutohide), "[]", "{}", state.Version, state.UpdatedAt.Unix(),
	)
	if err != nil {
		return nil, errs.Database("create_state", err)
	}
	// Re-read: a concurrent creator may have won the insert race.
	return s.getState(ctx, s.db, userID)
}

// UpdateState applies a partial update to the aggregate under optimistic
// locking. A stale expectedVersion is rejected with a ConflictError and no
// write is performed. Version increases by exactly 1 on success.
func (s *Store) UpdateState(ctx context.Context, userID string, patch types.StatePatch, expectedVersion *int64) (*types.DesktopState, error) {
	if _, err := s.GetOrCreateState(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.Database("update_state", err)
	}
	defer tx.Rollback()

	state, err := s.getState(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if expectedVersion != nil && *expectedVersion != state.Version {
		return nil, errs.Conflict(*expectedVersion, state.Version)
	}

	if patch.Wallpaper != nil {
		state.Wallpaper = *patch.Wallpaper
	}
	if patch.Theme != nil {
		state.Theme = *patch.Theme
	}
	if patch.TaskbarPosition != nil {
		state.TaskbarPosition = *patch.TaskbarPosition
	}
	if patch.TaskbarAutohide != nil {
		state.TaskbarAutohide = *patch.TaskbarAutohide
	}
	if patch.PinnedApps != nil {
		state.PinnedApps = patch.PinnedApps
	}
	if patch.Settings != nil {
		if state.Settings == nil {
			state.Settings = make(map[string]interface{})
		}
		for k, v := range patch.Settings {
			state.Settings[k] = v
		}
	}

	pinned, err := sonic.MarshalString(state.PinnedApps)
	if err != nil {
		return nil, errs.Database("update_state", err)
	}
	settings, err := sonic.MarshalString(state.Settings)
	if err != nil {
		return nil, errs.Database("update_state", err)
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE desktop_states
		SET wallpaper = ?, theme = ?, taskbar_position = ?, taskbar_autohide = ?,
		    pinned_apps = ?, settings = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		state.Wallpaper, state.Theme, state.TaskbarPosition, boolToInt(state.TaskbarAutohide),
		pinned, settings, now.Unix(), state.ID, state.Version,
	)
	if err != nil {
		return nil, errs.Database("update_state", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// The version moved under us between the read and the CAS.
		current, rerr := s.getState(ctx, tx, userID)
		if rerr != nil {
			return nil, rerr
		}
		expected := state.Version
		if expectedVersion != nil {
			expected = *expectedVersion
		}
		return nil, errs.Conflict(expected, current.Version)
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.Database("update_state", err)
	}

	state.Version++
	state.UpdatedAt = now
	return state, nil
}

// GetWindows returns every window row for the user, bottom to top.
func (s *Store) GetWindows(ctx context.Context, userID string) ([]types.Window, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+windowColumns+`
		FROM windows WHERE user_id = ? ORDER BY z_index ASC`, userID)
	if err != nil {
		return nil, errs.Database("get_windows", err)
	}
	defer rows.Close()

	windows := make([]types.Window, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, errs.Database("get_windows", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Database("get_windows", err)
	}
	return windows, nil
}

// GetWindow returns one window row scoped to the user.
func (s *Store) GetWindow(ctx context.Context, userID, windowID string) (*types.Window, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+windowColumns+`
		FROM windows WHERE user_id = ? AND id = ?`, userID, windowID)
	w, err := scanWindow(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("window", windowID)
	}
	if err != nil {
		return nil, errs.Database("get_window", err)
	}
	return &w, nil
}

// UpsertWindows persists a batch of windows for the aggregate. Windows
// without an id are created with a server-assigned id; the rest are updated
// by id. The whole batch rides a single multi-row statement inside one
// transaction.
func (s *Store) UpsertWindows(ctx context.Context, userID, desktopStateID string, windows []types.Window) ([]types.Window, error) {
	if len(windows) == 0 {
		return []types.Window{}, nil
	}

	now := time.Now().UTC()
	out := make([]types.Window, len(windows))
	args := make([]interface{}, 0, len(windows)*20)
	placeholders := make([]string, 0, len(windows))

	for i, w := range windows {
		if w.ID == "" {
			w.ID = id.NewWindowID().String()
		}
		out[i] = w

		appState := "{}"
		if w.AppState != nil {
			enc, err := sonic.MarshalString(w.AppState)
			if err != nil {
				return nil, errs.Database("upsert_windows", err)
			}
			appState = enc
		}

		var savedX, savedY, savedW, savedH interface{}
		if w.SavedPosition != nil {
			savedX, savedY = w.SavedPosition.X, w.SavedPosition.Y
		}
		if w.SavedSize != nil {
			savedW, savedH = w.SavedSize.Width, w.SavedSize.Height
		}
		var prevState interface{}
		if w.PreviousState != nil {
			prevState = string(*w.PreviousState)
		}

		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			w.ID, userID, desktopStateID, w.AppID, w.Title, w.Icon,
			w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height,
			string(w.State), savedX, savedY, savedW, savedH, prevState,
			w.ZIndex, boolToInt(w.Focused), appState, now.Unix(),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.Database("upsert_windows", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO windows
			(id, user_id, desktop_state_id, app_id, title, icon, x, y, width, height,
			 state, saved_x, saved_y, saved_width, saved_height, previous_state,
			 z_index, focused, app_state, updated_at)
		VALUES ` + strings.Join(placeholders, ", ") + `
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, icon = excluded.icon,
			x = excluded.x, y = excluded.y,
			width = excluded.width, height = excluded.height,
			state = excluded.state,
			saved_x = excluded.saved_x, saved_y = excluded.saved_y,
			saved_width = excluded.saved_width, saved_height = excluded.saved_height,
			previous_state = excluded.previous_state,
			z_index = excluded.z_index, focused = excluded.focused,
			app_state = excluded.app_state, updated_at = excluded.updated_at`

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, errs.Database("upsert_windows", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.Database("upsert_windows", err)
	}
	return out, nil
}

// DeleteWindow removes one window row scoped to the user.
func (s *Store) DeleteWindow(ctx context.Context, userID, windowID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM windows WHERE user_id = ? AND id = ?`, userID, windowID)
	if err != nil {
		return errs.Database("delete_window", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFound("window", windowID)
	}
	return nil
}

// DeleteAllWindows removes every window row for the user.
func (s *Store) DeleteAllWindows(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM windows WHERE user_id = ?`, userID)
	if err != nil {
		return 0, errs.Database("delete_all_windows", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// BringToFront mirrors the in-session focus algorithm at the persistence
// layer: the window takes the highest z-index and exclusive focus, so server
// state stays consistent with client intent even if the client crashes
// before a full save.
func (s *Store) BringToFront(ctx context.Context, userID, windowID string) (*types.Window, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.Database("bring_to_front", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM windows WHERE user_id = ? AND id = ?`, userID, windowID).Scan(&exists)
	if err != nil {
		return nil, errs.Database("bring_to_front", err)
	}
	if exists == 0 {
		return nil, errs.NotFound("window", windowID)
	}

	var top int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(z_index), 99) FROM windows WHERE user_id = ?`, userID).Scan(&top)
	if err != nil {
		return nil, errs.Database("bring_to_front", err)
	}

	now := time.Now().UTC().Unix()
	if _, err := tx.ExecContext(ctx,
		`UPDATE windows SET focused = 0, updated_at = ? WHERE user_id = ? AND focused = 1 AND id <> ?`,
		now, userID, windowID); err != nil {
		return nil, errs.Database("bring_to_front", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE windows SET focused = 1, z_index = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		top+1, now, userID, windowID); err != nil {
		return nil, errs.Database("bring_to_front", err)
	}

	row := tx.QueryRowContext(ctx, `
		SELECT `+windowColumns+`
		FROM windows WHERE user_id = ? AND id = ?`, userID, windowID)
	w, err := scanWindow(row)
	if err != nil {
		return nil, errs.Database("bring_to_front", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.Database("bring_to_front", err)
	}
	return &w, nil
}

// Reset deletes every window row and restores the aggregate to its default
// wallpaper/theme/taskbar configuration. The version still advances.
func (s *Store) Reset(ctx context.Context, userID string) (*types.DesktopState, error) {
	state, err := s.GetOrCreateState(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.Database("reset", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM windows WHERE user_id = ?`, userID); err != nil {
		return nil, errs.Database("reset", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE desktop_states
		SET wallpaper = ?, theme = ?, taskbar_position = ?, taskbar_autohide = 0,
		    pinned_apps = '[]', settings = '{}', version = version + 1, updated_at = ?
		WHERE id = ?`,
		DefaultWallpaper, DefaultTheme, DefaultTaskbarPosition, now.Unix(), state.ID,
	); err != nil {
		return nil, errs.Database("reset", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.Database("reset", err)
	}
	return s.getState(ctx, s.db, userID)
}

// querier abstracts *sql.DB and *sql.Tx for shared read helpers.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *Store) getState(ctx context.Context, q querier, userID string) (*types.DesktopState, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, wallpaper, theme, taskbar_position, taskbar_autohide,
		       pinned_apps, settings, version, updated_at
		FROM desktop_states WHERE user_id = ?`, userID)

	var (
		state     types.DesktopState
		autohide  int
		pinned    string
		settings  string
		updatedAt int64
	)
	err := row.Scan(&state.ID, &state.UserID, &state.Wallpaper, &state.Theme,
		&state.TaskbarPosition, &autohide, &pinned, &settings, &state.Version, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("desktop_state", userID)
	}
	if err != nil {
		return nil, errs.Database("get_state", err)
	}

	state.TaskbarAutohide = autohide != 0
	state.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	if err := sonic.UnmarshalString(pinned, &state.PinnedApps); err != nil {
		return nil, errs.Database("get_state", err)
	}
	if err := sonic.UnmarshalString(settings, &state.Settings); err != nil {
		return nil, errs.Database("get_state", err)
	}
	if state.PinnedApps == nil {
		state.PinnedApps = []string{}
	}
	if state.Settings == nil {
		state.Settings = map[string]interface{}{}
	}
	return &state, nil
}

const windowColumns = `id, app_id, title, icon, x, y, width, height, state,
	saved_x, saved_y, saved_width, saved_height, previous_state, z_index, focused, app_state`

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(sc scanner) (types.Window, error) {
	var (
		w         types.Window
		state     string
		savedX    sql.NullInt64
		savedY    sql.NullInt64
		savedW    sql.NullInt64
		savedH    sql.NullInt64
		prevState sql.NullString
		focused   int
		appState  string
	)
	err := sc.Scan(&w.ID, &w.AppID, &w.Title, &w.Icon,
		&w.Position.X, &w.Position.Y, &w.Size.Width, &w.Size.Height, &state,
		&savedX, &savedY, &savedW, &savedH, &prevState, &w.ZIndex, &focused, &appState)
	if err != nil {
		return w, err
	}

	w.State = types.WindowState(state)
	w.Focused = focused != 0
	if savedX.Valid && savedY.Valid {
		w.SavedPosition = &types.Position{X: int(savedX.Int64), Y: int(savedY.Int64)}
	}
	if savedW.Valid && savedH.Valid {
		w.SavedSize = &types.Size{Width: int(savedW.Int64), Height: int(savedH.Int64)}
	}
	if prevState.Valid {
		ps := types.WindowState(prevState.String)
		w.PreviousState = &ps
	}
	if appState != "" && appState != "{}" {
		if err := sonic.UnmarshalString(appState, &w.AppState); err != nil {
			return w, err
		}
	}
	return w, nil
}

func defaultState(userID string) *types.DesktopState {
	return &types.DesktopState{
		ID:              id.NewDesktopID().String(),
		UserID:          userID,
		Wallpaper:       DefaultWallpaper,
		Theme:           DefaultTheme,
		TaskbarPosition: DefaultTaskbarPosition,
		TaskbarAutohide: false,
		PinnedApps:      []string{},
		Settings:        map[string]interface{}{},
		Version:         1,
		UpdatedAt:       time.Now().UTC(),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
