// Command preview prints the project list for a query, to eyeball the
// rendering without starting the full-screen UI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/montrey/launchpad/search"
	"github.com/montrey/launchpad/session"
	"github.com/montrey/launchpad/ui"
)

func main() {
	paths := []string{
		"/home/me/owl",
		"/home/me/dev/navi",
		"/home/me/dev/my-cool_Project",
		"/home/me/dev/fooBarBaz",
		"/home/me/dev/apples",
		"/home/me/dev/apricots",
		"/home/me/dev/bananas",
	}
	var candidates []search.Candidate
	for _, p := range paths {
		candidates = append(candidates, search.NewCandidate(p))
	}

	var list ui.ListModel
	ctrl := session.New(candidates, search.Ranker{}, func(v session.View) {
		list = ui.NewListModel(v, 80, 20)
	})

	query := strings.Join(os.Args[1:], " ")
	_ = ctrl.QueryChanged(query)
	if _, err := ctrl.Confirm(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("=== %q (%s) ===\n", query, ctrl.State())
	fmt.Println(list.View())
}
