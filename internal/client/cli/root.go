package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	user := a.session.User()
	if user == nil {
		return "(anonymous)"
	}
	s := user.Email
	if user.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to TrackVers CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("trackvers %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)

		case "l", "list", "catalog":
			a.listCatalog(ctx)
		case "track":
			a.toggleTrack(ctx, args)
		case "fav":
			a.toggleFavorite(ctx, args)
		case "version":
			a.editVersion(ctx, args)

		case "d", "dashboard":
			a.showDashboard(ctx)
		case "add":
			a.addTracked(ctx, args)
		case "remove":
			a.removeTracked(ctx, args)
		case "check":
			a.checkVersions(ctx)

		case "profile":
			a.showProfile(ctx)
		case "editprofile":
			a.editProfile(ctx)
		case "push":
			a.subscribePush(ctx, args)
		case "unpush":
			a.unsubscribePush(ctx, args)

		case "tutorial":
			a.tutorial.Restart()
			a.runTutorial(ctx)

		case "softadd":
			a.addSoftware(ctx)
		case "softedit":
			a.editSoftware(ctx, args)
		case "softdel":
			a.deleteSoftware(ctx, args)
		case "logo":
			a.uploadLogo(ctx, args)
		case "mkadmin":
			a.createAdmin(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	if !a.isLoggedIn() {
		fmt.Println("Available commands: register, login, (l)ist, fav <id>, tutorial, exit")
		return
	}
	fmt.Println("Available commands: (l)ist, track <id>, fav <id>, version <id> <version>,")
	fmt.Println("  (d)ashboard, add <id> [version], remove <record-id>, check,")
	fmt.Println("  profile, editprofile, tutorial, logout, exit")
	if a.isAdmin() {
		fmt.Println("Admin commands: softadd, softedit <id>, softdel <id>, logo <id> <file>, mkadmin")
	}
}
