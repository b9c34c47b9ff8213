package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/code-vault/internal/apperror"
)

func TestNext_Allowed(t *testing.T) {
	tests := []struct {
		name       string
		from       Screen
		action     Action
		id         string
		wantTo     Screen
		wantTarget string
	}{
		{name: "home add", from: Home(), action: RequestAdd, wantTo: Add()},
		{name: "home view", from: Home(), action: ViewSnippet, id: "1", wantTo: View("1"), wantTarget: "1"},
		{name: "home edit", from: Home(), action: EditSnippet, id: "1", wantTo: Edit("1"), wantTarget: "1"},
		{name: "home delete stays home", from: Home(), action: DeleteSnippet, id: "1", wantTo: Home(), wantTarget: "1"},
		{name: "home favorite stays home", from: Home(), action: ToggleFavorite, id: "1", wantTo: Home(), wantTarget: "1"},
		{name: "home search", from: Home(), action: SetSearch, wantTo: Home()},
		{name: "home language", from: Home(), action: SetLanguage, wantTo: Home()},
		{name: "add save", from: Add(), action: SaveSnippet, wantTo: Home()},
		{name: "add cancel", from: Add(), action: Cancel, wantTo: Home()},
		{name: "edit save goes to detail", from: Edit("7"), action: SaveSnippet, wantTo: View("7"), wantTarget: "7"},
		{name: "edit cancel goes home", from: Edit("7"), action: Cancel, wantTo: Home()},
		{name: "view edit", from: View("7"), action: EditSnippet, wantTo: Edit("7"), wantTarget: "7"},
		{name: "view delete", from: View("7"), action: DeleteSnippet, wantTo: Home(), wantTarget: "7"},
		{name: "view favorite stays", from: View("7"), action: ToggleFavorite, wantTo: View("7"), wantTarget: "7"},
		{name: "view explain stays", from: View("7"), action: ExplainSnippet, wantTo: View("7"), wantTarget: "7"},
		{name: "view copy stays", from: View("7"), action: CopyCode, wantTo: View("7"), wantTarget: "7"},
		{name: "view share stays", from: View("7"), action: ShareSnippet, wantTo: View("7"), wantTarget: "7"},
		{name: "view home", from: View("7"), action: ShowHome, wantTo: Home()},
		{name: "edit home", from: Edit("7"), action: ShowHome, wantTo: Home()},
		{name: "add home", from: Add(), action: ShowHome, wantTo: Home()},
		{name: "nav add from view", from: View("7"), action: RequestAdd, wantTo: Add()},
		{name: "nav add from edit", from: Edit("7"), action: RequestAdd, wantTo: Add()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.action, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, got.To)
			assert.Equal(t, tt.wantTarget, got.Target)
		})
	}
}

func TestNext_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		from   Screen
		action Action
	}{
		{name: "save on home", from: Home(), action: SaveSnippet},
		{name: "cancel on home", from: Home(), action: Cancel},
		{name: "explain on home", from: Home(), action: ExplainSnippet},
		{name: "delete on add", from: Add(), action: DeleteSnippet},
		{name: "search on add", from: Add(), action: SetSearch},
		{name: "favorite on edit", from: Edit("1"), action: ToggleFavorite},
		{name: "save on view", from: View("1"), action: SaveSnippet},
		{name: "cancel on view", from: View("1"), action: Cancel},
		{name: "unknown action", from: Home(), action: Action("dance")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Next(tt.from, tt.action, "1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrInvalidTransition), "error = %v", err)
		})
	}
}

func TestNext_HomeActionsNeedAnID(t *testing.T) {
	for _, action := range []Action{ViewSnippet, EditSnippet, DeleteSnippet, ToggleFavorite} {
		_, err := Next(Home(), action, "")
		assert.True(t, errors.Is(err, apperror.ErrValidation), "action %s: error = %v", action, err)
	}
}

func TestNext_ViewAcceptsOnlyItsOwnID(t *testing.T) {
	got, err := Next(View("1"), EditSnippet, "1")
	require.NoError(t, err)
	assert.Equal(t, Edit("1"), got.To)

	for _, action := range []Action{EditSnippet, DeleteSnippet, ToggleFavorite, ExplainSnippet, CopyCode, ShareSnippet} {
		t.Run(string(action), func(t *testing.T) {
			_, err := Next(View("1"), action, "2")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
		})
	}
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "home", Home().String())
	assert.Equal(t, "view(abc)", View("abc").String())
}
