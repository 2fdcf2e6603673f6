package utils

import (
	"regexp"

	"github.com/webdeskos/backend/internal/shared/errs"
	"github.com/webdeskos/backend/internal/shared/types"
)

// String length limits
const (
	MaxIDLength    = 128
	MaxTitleLength = 256
	MaxIconLength  = 2048 // Icons may be data URIs or asset paths
	MaxAppIDLength = 64
)

// Geometry limits accepted at the API boundary. Anything inside these
// bounds is then clamped by the placement engine.
const (
	MaxCoordinate = 1 << 20
	MaxDimension  = 1 << 16
)

// SafeIDPattern allows alphanumeric, hyphens, underscores
var SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID checks an opaque identifier (user, window, app).
func ValidateID(id, field string, required bool) error {
	if id == "" {
		if required {
			return errs.Invalid(field, "must not be empty")
		}
		return nil
	}
	if len(id) > MaxIDLength {
		return errs.Invalid(field, "exceeds maximum length")
	}
	if !SafeIDPattern.MatchString(id) {
		return errs.Invalid(field, "contains invalid characters")
	}
	return nil
}

// ValidatePosition checks that a position is within representable bounds.
func ValidatePosition(pos types.Position, field string) error {
	if pos.X < -MaxCoordinate || pos.X > MaxCoordinate {
		return errs.Invalid(field, "x out of range")
	}
	if pos.Y < -MaxCoordinate || pos.Y > MaxCoordinate {
		return errs.Invalid(field, "y out of range")
	}
	return nil
}

// ValidateSize checks that dimensions are strictly positive and bounded.
func ValidateSize(size types.Size, field string) error {
	if size.Width <= 0 || size.Height <= 0 {
		return errs.Invalid(field, "width and height must be positive")
	}
	if size.Width > MaxDimension || size.Height > MaxDimension {
		return errs.Invalid(field, "dimensions out of range")
	}
	return nil
}

// ValidateWindow checks a window payload at the API boundary, before it
// reaches the store or the persistence service.
func ValidateWindow(w *types.Window) error {
	if w.ID != "" {
		if err := ValidateID(w.ID, "id", false); err != nil {
			return err
		}
	}
	if err := ValidateID(w.AppID, "appId", true); err != nil {
		return err
	}
	if len(w.AppID) > MaxAppIDLength {
		return errs.Invalid("appId", "exceeds maximum length")
	}
	if len(w.Title) > MaxTitleLength {
		return errs.Invalid("title", "exceeds maximum length")
	}
	if len(w.Icon) > MaxIconLength {
		return errs.Invalid("icon", "exceeds maximum length")
	}
	if err := ValidatePosition(w.Position, "position"); err != nil {
		return err
	}
	if err := ValidateSize(w.Size, "size"); err != nil {
		return err
	}
	if !w.State.Valid() {
		return errs.Invalid("state", "unknown window state")
	}
	if w.PreviousState != nil && !w.PreviousState.Valid() {
		return errs.Invalid("previousState", "unknown window state")
	}
	if w.SavedPosition != nil {
		if err := ValidatePosition(*w.SavedPosition, "savedPosition"); err != nil {
			return err
		}
	}
	if w.SavedSize != nil {
		if err := ValidateSize(*w.SavedSize, "savedSize"); err != nil {
			return err
		}
	}
	if w.ZIndex < 0 {
		return errs.Invalid("zIndex", "must be non-negative")
	}
	return nil
}

// ValidateStatePatch checks a partial desktop update.
func ValidateStatePatch(p types.StatePatch) error {
	if p.TaskbarPosition != nil && !types.ValidTaskbarPosition(*p.TaskbarPosition) {
		return errs.Invalid("taskbarPosition", "unknown taskbar edge")
	}
	if p.Theme != nil && *p.Theme == "" {
		return errs.Invalid("theme", "must not be empty")
	}
	if p.Wallpaper != nil && *p.Wallpaper == "" {
		return errs.Invalid("wallpaper", "must not be empty")
	}
	for _, app := range p.PinnedApps {
		if err := ValidateID(app, "pinnedApps", true); err != nil {
			return err
		}
	}
	return nil
}
