// Package router is the screen state machine.
//
// It is pure: Next looks at the current screen and an action and answers
// "where do we go, and which snippet does this act on?". It never touches
// the store. The controller performs the store effect and only then commits
// the new screen, so a failed save leaves the user on the form.
//
//	Home ──RequestAdd──▶ Add ──SaveSnippet/Cancel──▶ Home
//	Home ──ViewSnippet──▶ View(id) ──EditSnippet──▶ Edit(id)
//	Home ──EditSnippet──▶ Edit(id) ──SaveSnippet──▶ View(id)
//	Edit(id) ──Cancel──▶ Home        View(id) ──DeleteSnippet──▶ Home
//	any ──ShowHome──▶ Home           any ──RequestAdd──▶ Add
package router

import (
	"fmt"

	"github.com/sakif/code-vault/internal/apperror"
)

// Kind names a screen.
type Kind string

const (
	KindHome Kind = "home"
	KindAdd  Kind = "add"
	KindEdit Kind = "edit"
	KindView Kind = "view"
)

// Screen is the active view. Edit and View carry the id of the snippet they
// show. The id is a weak reference: it is looked up again on every render,
// and a deleted snippet simply renders as "not found".
type Screen struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
}

func Home() Screen          { return Screen{Kind: KindHome} }
func Add() Screen           { return Screen{Kind: KindAdd} }
func Edit(id string) Screen { return Screen{Kind: KindEdit, ID: id} }
func View(id string) Screen { return Screen{Kind: KindView, ID: id} }

func (s Screen) String() string {
	if s.ID == "" {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.ID)
}

// Action is a user intent.
type Action string

const (
	ShowHome       Action = "home"
	RequestAdd     Action = "add"
	ViewSnippet    Action = "view"
	EditSnippet    Action = "edit"
	SaveSnippet    Action = "save"
	Cancel         Action = "cancel"
	DeleteSnippet  Action = "delete"
	ToggleFavorite Action = "favorite"
	SetSearch      Action = "search"
	SetLanguage    Action = "language"
	ExplainSnippet Action = "explain"
	CopyCode       Action = "copy"
	ShareSnippet   Action = "share"
)

// Transition is the outcome of Next.
type Transition struct {
	To Screen
	// Target is the snippet the action operates on, or "" when it has none.
	Target string
}

// Next computes the transition for action on screen from.
//
// id is the snippet the user clicked. Edit and View screens always act on
// the snippet they display: an empty id means that snippet, and a different
// id is rejected. Actions the screen does not offer return an
// apperror.InvalidTransition.
func Next(from Screen, action Action, id string) (Transition, error) {
	// Global navigation: the back button and the bottom nav bar.
	switch action {
	case ShowHome:
		return Transition{To: Home()}, nil
	case RequestAdd:
		return Transition{To: Add()}, nil
	}

	switch from.Kind {
	case KindHome:
		return fromHome(action, id)
	case KindAdd:
		switch action {
		case SaveSnippet, Cancel:
			return Transition{To: Home()}, nil
		}
	case KindEdit:
		switch action {
		case SaveSnippet:
			return Transition{To: View(from.ID), Target: from.ID}, nil
		case Cancel:
			return Transition{To: Home()}, nil
		}
	case KindView:
		return fromView(from, action, id)
	}

	return Transition{}, apperror.InvalidTransition(string(action), string(from.Kind))
}

func fromHome(action Action, id string) (Transition, error) {
	switch action {
	case SetSearch, SetLanguage:
		return Transition{To: Home()}, nil
	case ViewSnippet, EditSnippet, DeleteSnippet, ToggleFavorite:
		if id == "" {
			return Transition{}, apperror.ValidationFailed("id", "snippet id is required")
		}
	default:
		return Transition{}, apperror.InvalidTransition(string(action), string(KindHome))
	}

	switch action {
	case ViewSnippet:
		return Transition{To: View(id), Target: id}, nil
	case EditSnippet:
		return Transition{To: Edit(id), Target: id}, nil
	default:
		// Delete and favorite act from the list and leave the user on it.
		return Transition{To: Home(), Target: id}, nil
	}
}

// fromView acts only on the snippet the screen shows. An empty id means
// that snippet; any other id is a command aimed at a different screen.
func fromView(from Screen, action Action, id string) (Transition, error) {
	if id != "" && id != from.ID {
		return Transition{}, apperror.InvalidTransition(string(action), from.String())
	}
	id = from.ID
	switch action {
	case EditSnippet:
		return Transition{To: Edit(id), Target: id}, nil
	case DeleteSnippet:
		return Transition{To: Home(), Target: id}, nil
	case ToggleFavorite, ExplainSnippet, CopyCode, ShareSnippet:
		return Transition{To: from, Target: id}, nil
	}
	return Transition{}, apperror.InvalidTransition(string(action), string(KindView))
}
