package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trackvers/trackvers/internal/common"
)

func (a *App) showDashboard(ctx context.Context) {
	if err := a.dashboard.Refresh(ctx); err != nil {
		if errors.Is(err, common.ErrAuthRequired) {
			fmt.Println("Sign in to see your dashboard.")
			return
		}
		fmt.Println("Error loading dashboard:", err.Error())
		return
	}

	rows := a.dashboard.Rows()
	if len(rows) == 0 {
		fmt.Println("Nothing tracked yet. Use 'track <software-id>' or 'add <software-id> [version]'.")
		return
	}

	fmt.Printf("\nTracked software (%d updates available)\n", a.dashboard.UpdatesAvailable())
	for _, row := range rows {
		line := fmt.Sprintf("  %s [%s] %s", row.Name, row.TrackedID, row.CurrentVersion)
		if row.UpdateAvailable {
			line += fmt.Sprintf(" -> %s", row.LatestVersion)
		} else {
			line += " (up to date)"
		}
		if row.EOL != nil && row.EOL.EOLDate != nil {
			line += ", EOL " + row.EOL.EOLDate.Format(time.DateOnly)
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func (a *App) addTracked(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: add <software-id> [version]")
		return
	}
	version := ""
	if len(args) > 1 {
		version = args[1]
	}

	if err := a.dashboard.AddTracked(ctx, args[0], version); err != nil {
		fmt.Println("Error:", err.Error())
		return
	}
	fmt.Println("Added.")
}

func (a *App) removeTracked(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: remove <record-id>")
		return
	}

	if err := a.dashboard.Remove(ctx, args[0]); err != nil {
		fmt.Println("Error:", err.Error())
		return
	}
	fmt.Println("Removed.")
}

func (a *App) checkVersions(ctx context.Context) {
	if err := a.dashboard.CheckVersions(ctx); err != nil {
		if errors.Is(err, common.ErrAuthRequired) {
			fmt.Println("Sign in to run a version check.")
			return
		}
		fmt.Println("Error checking versions:", err.Error())
		return
	}
	fmt.Println("Version check finished.")
}
