package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// runTutorial walks the onboarding steps. "n" advances, "p" goes back, "s"
// skips; finishing or skipping persists completion so the walkthrough is not
// shown again.
func (a *App) runTutorial(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		step, ok := a.tutorial.Step()
		if !ok {
			return
		}
		current, total := a.tutorial.StepNumber()
		fmt.Printf("\n[%d/%d] %s\n%s\n", current, total, step.Title, step.Content)
		fmt.Print("(n)ext, (p)rev, (s)kip > ")

		if !scanner.Scan() {
			return
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "p", "prev":
			a.tutorial.Prev()
		case "s", "skip":
			if err := a.tutorial.Skip(ctx); err != nil {
				fmt.Println("Error saving tutorial state:", err.Error())
			}
			return
		default:
			if err := a.tutorial.Next(ctx); err != nil {
				fmt.Println("Error saving tutorial state:", err.Error())
			}
		}
	}
}
