package types

import "time"

// Taskbar positions accepted by the aggregate.
const (
	TaskbarBottom = "bottom"
	TaskbarTop    = "top"
	TaskbarLeft   = "left"
	TaskbarRight  = "right"
)

// ValidTaskbarPosition reports whether p is a known taskbar edge.
func ValidTaskbarPosition(p string) bool {
	switch p {
	case TaskbarBottom, TaskbarTop, TaskbarLeft, TaskbarRight:
		return true
	}
	return false
}

// DesktopState is the per-user desktop aggregate.
//
// Version increases by exactly 1 on every successful update; a write
// supplying a stale expected version is rejected, never merged.
type DesktopState struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	Wallpaper       string                 `json:"wallpaper"`
	Theme           string                 `json:"theme"`
	TaskbarPosition string                 `json:"taskbarPosition"`
	TaskbarAutohide bool                   `json:"taskbarAutohide"`
	PinnedApps      []string               `json:"pinnedApps"`
	Settings        map[string]interface{} `json:"settings"`
	Version         int64                  `json:"version"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// DesktopSnapshot is the full response shape for a desktop load: the
// aggregate plus all of its window rows.
type DesktopSnapshot struct {
	State   DesktopState `json:"state"`
	Windows []Window     `json:"windows"`
}

// StatePatch carries a partial desktop update. Nil fields are left
// untouched by the save path.
type StatePatch struct {
	Wallpaper       *string                `json:"wallpaper,omitempty"`
	Theme           *string                `json:"theme,omitempty"`
	TaskbarPosition *string                `json:"taskbarPosition,omitempty"`
	TaskbarAutohide *bool                  `json:"taskbarAutohide,omitempty"`
	PinnedApps      []string               `json:"pinnedApps,omitempty"`
	Settings        map[string]interface{} `json:"settings,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p StatePatch) Empty() bool {
	return p.Wallpaper == nil && p.Theme == nil && p.TaskbarPosition == nil &&
		p.TaskbarAutohide == nil && p.PinnedApps == nil && p.Settings == nil
}

// DedupedPinnedApps returns the pinned app list with duplicates removed,
// preserving first-occurrence order. Duplicates are permitted at the API
// boundary but deduplicated for display.
func (d *DesktopState) DedupedPinnedApps() []string {
	seen := make(map[string]bool, len(d.PinnedApps))
	out := make([]string, 0, len(d.PinnedApps))
	for _, app := range d.PinnedApps {
		if !seen[app] {
			seen[app] = true
			out = append(out, app)
		}
	}
	return out
}
