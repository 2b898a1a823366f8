package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) showProfile(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Sign in to see your profile.")
		return
	}

	profile, err := a.gw.FetchProfile(ctx)
	if err != nil {
		fmt.Println("Error loading profile:", err.Error())
		return
	}

	fmt.Printf("Full name: %s\nEmail: %s\nRole: %s\n", profile.FullName, profile.Email, displayRole(profile.Role))
	fmt.Printf("Email notifications: %t\nBrowser notifications: %t\n", profile.NotifyEmail, profile.NotifyBrowser)
}

// displayRole mirrors the session default: an empty stored role reads as
// "user".
func displayRole(role string) string {
	if role == "" {
		return "user"
	}
	return role
}

func (a *App) editProfile(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Sign in to edit your profile.")
		return
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return
	}
	notifyEmail, err := GetConfirm(a.reader, "Notify by email?", os.Stdout)
	if err != nil {
		return
	}
	notifyBrowser, err := GetConfirm(a.reader, "Notify in browser?", os.Stdout)
	if err != nil {
		return
	}

	if err := a.gw.UpdateProfile(ctx, fullName, notifyEmail, notifyBrowser); err != nil {
		fmt.Println("Error updating profile:", err.Error())
		return
	}
	fmt.Println("Profile updated.")
}

// subscribePush registers a push endpoint for the signed-in user; browsers do
// this automatically, the CLI takes the endpoint and keys explicitly.
func (a *App) subscribePush(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Println("Sign in to manage push subscriptions.")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: push <endpoint>")
		return
	}

	p256dh, err := getSimpleText(a.reader, "Enter p256dh key", os.Stdout)
	if err != nil {
		return
	}
	auth, err := getSimpleText(a.reader, "Enter auth secret", os.Stdout)
	if err != nil {
		return
	}

	if err := a.gw.SubscribePush(ctx, args[0], p256dh, auth); err != nil {
		fmt.Println("Error subscribing:", err.Error())
		return
	}
	fmt.Println("Subscribed.")
}

func (a *App) unsubscribePush(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Println("Sign in to manage push subscriptions.")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: unpush <endpoint>")
		return
	}

	if err := a.gw.UnsubscribePush(ctx, args[0]); err != nil {
		fmt.Println("Error unsubscribing:", err.Error())
		return
	}
	fmt.Println("Unsubscribed.")
}
