package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdeskos/backend/internal/shared/errs"
	"github.com/webdeskos/backend/internal/shared/types"
)

func validWindow() types.Window {
	return types.Window{
		AppID:    "calculator",
		Title:    "Calculator",
		Position: types.Position{X: 100, Y: 50},
		Size:     types.Size{Width: 800, Height: 600},
		State:    types.StateNormal,
		ZIndex:   100,
	}
}

func TestValidateWindow(t *testing.T) {
	w := validWindow()
	assert.NoError(t, ValidateWindow(&w))

	w = validWindow()
	w.AppID = ""
	assert.True(t, errs.IsValidation(ValidateWindow(&w)))

	w = validWindow()
	w.Size.Width = 0
	assert.True(t, errs.IsValidation(ValidateWindow(&w)))

	w = validWindow()
	w.Size.Height = -5
	assert.True(t, errs.IsValidation(ValidateWindow(&w)))

	w = validWindow()
	w.State = "docked"
	assert.True(t, errs.IsValidation(ValidateWindow(&w)))

	w = validWindow()
	w.ZIndex = -1
	assert.True(t, errs.IsValidation(ValidateWindow(&w)))

	w = validWindow()
	w.Title = strings.Repeat("t", MaxTitleLength+1)
	assert.True(t, errs.IsValidation(ValidateWindow(&w)))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("user-1_abc", "userId", true))
	assert.Error(t, ValidateID("", "userId", true))
	assert.NoError(t, ValidateID("", "userId", false))
	assert.Error(t, ValidateID("no spaces", "userId", true))
	assert.Error(t, ValidateID(strings.Repeat("a", MaxIDLength+1), "userId", true))
}

func TestValidateStatePatch(t *testing.T) {
	pos := "left"
	assert.NoError(t, ValidateStatePatch(types.StatePatch{TaskbarPosition: &pos}))

	bad := "middle"
	assert.Error(t, ValidateStatePatch(types.StatePatch{TaskbarPosition: &bad}))

	empty := ""
	assert.Error(t, ValidateStatePatch(types.StatePatch{Theme: &empty}))
	assert.Error(t, ValidateStatePatch(types.StatePatch{Wallpaper: &empty}))

	assert.Error(t, ValidateStatePatch(types.StatePatch{PinnedApps: []string{"ok", "bad one"}}))
	assert.NoError(t, ValidateStatePatch(types.StatePatch{PinnedApps: []string{"files", "files"}}))
}
