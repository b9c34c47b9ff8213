package app

import (
	"github.com/sakif/code-vault/internal/router"
	"github.com/sakif/code-vault/internal/service"
)

// Command is one user event. Views never mutate state themselves: they
// build a Command and hand it to App.Dispatch.
type Command struct {
	Action router.Action
	// ID is the snippet the event refers to. Optional on Edit and View
	// screens, where the screen's own snippet is implied.
	ID string
	// Text carries the search text or the selected language.
	Text string
	// Form carries the submitted add/edit form.
	Form service.Form
}

func ShowHome() Command                  { return Command{Action: router.ShowHome} }
func RequestAdd() Command                { return Command{Action: router.RequestAdd} }
func ViewSnippet(id string) Command      { return Command{Action: router.ViewSnippet, ID: id} }
func EditSnippet(id string) Command      { return Command{Action: router.EditSnippet, ID: id} }
func SaveSnippet(f service.Form) Command { return Command{Action: router.SaveSnippet, Form: f} }
func Cancel() Command                    { return Command{Action: router.Cancel} }
func DeleteSnippet(id string) Command    { return Command{Action: router.DeleteSnippet, ID: id} }
func ToggleFavorite(id string) Command   { return Command{Action: router.ToggleFavorite, ID: id} }
func SetSearch(text string) Command      { return Command{Action: router.SetSearch, Text: text} }
func SetLanguage(lang string) Command    { return Command{Action: router.SetLanguage, Text: lang} }
func ExplainSnippet(id string) Command   { return Command{Action: router.ExplainSnippet, ID: id} }
func CopyCode(id string) Command         { return Command{Action: router.CopyCode, ID: id} }
func ShareSnippet(id string) Command     { return Command{Action: router.ShareSnippet, ID: id} }
