package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, password and display name and creates an
// account; the fresh account is signed straight in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SignUp(ctx, email, string(password), fullName); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success!")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout clears the session. The local state is gone even when the server
// call failed, so the failure is only reported.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		log.Printf("Remote sign-out failed: %s", err.Error())
	}
	fmt.Println("Signed out.")
	return nil
}
