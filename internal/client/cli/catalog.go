package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/common"
)

// listCatalog prints the catalog grouped by category, marking favorites and
// tracked items.
func (a *App) listCatalog(ctx context.Context) {
	if err := a.catalog.Refresh(ctx); err != nil {
		fmt.Println("Error loading catalog:", err.Error())
		if !a.catalog.Loaded() {
			return
		}
		fmt.Println("Showing previously loaded data.")
	}

	grouped := a.catalog.Grouped()
	for _, cat := range a.catalog.Categories() {
		fmt.Printf("\n%s\n", cat)
		for _, item := range grouped[cat] {
			fmt.Printf("  %s\n", a.formatItem(&item))
		}
	}
	fmt.Println()
}

func (a *App) formatItem(item *models.SoftwareItem) string {
	s := ""
	if a.catalog.Favorite(item.ID) {
		s += "* "
	}
	s += fmt.Sprintf("%s [%s]", item.Name, item.ID)
	if item.LatestVersion != "" {
		s += " latest " + item.LatestVersion
	}
	if item.Tracked() {
		s += fmt.Sprintf(" | tracking %s (%s)", item.CurrentVersion, item.Status)
	}
	return s
}

func (a *App) toggleTrack(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: track <software-id>")
		return
	}

	action, err := a.catalog.ToggleTrack(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrAuthRequired) {
			fmt.Println("Sign in to track software.")
			return
		}
		fmt.Println("Error:", err.Error())
		return
	}
	fmt.Printf("%s %s\n", args[0], action)
}

func (a *App) toggleFavorite(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: fav <software-id>")
		return
	}

	fav, err := a.catalog.ToggleFavorite(ctx, args[0])
	if err != nil {
		fmt.Println("Error:", err.Error())
		return
	}
	if fav {
		fmt.Printf("%s added to favorites\n", args[0])
	} else {
		fmt.Printf("%s removed from favorites\n", args[0])
	}
}

func (a *App) editVersion(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: version <software-id> <version>")
		return
	}

	if err := a.catalog.EditVersion(ctx, args[0], args[1]); err != nil {
		fmt.Println("Error:", err.Error())
		return
	}
	fmt.Printf("%s now tracked at %s\n", args[0], args[1])
}
