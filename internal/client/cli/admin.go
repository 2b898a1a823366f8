package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/netx"
)

// promptSoftware collects the editable catalog fields; empty answers keep the
// current value.
func (a *App) promptSoftware(item *models.SoftwareItem) error {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &item.Name},
		{"Enter category", &item.Category},
		{"Enter description", &item.Description},
		{"Enter latest version", &item.LatestVersion},
		{"Enter source URL", &item.SourceURL},
		{"Enter icon", &item.Icon},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}
	return nil
}

func (a *App) addSoftware(ctx context.Context) {
	if !a.isAdmin() {
		fmt.Println("Admin access required.")
		return
	}

	id, err := getSimpleText(a.reader, "Enter id (slug)", os.Stdout)
	if err != nil || id == "" {
		fmt.Println("An id is required.")
		return
	}

	item := models.SoftwareItem{ID: id}
	if err := a.promptSoftware(&item); err != nil {
		return
	}

	if err := a.gw.CreateSoftware(ctx, &item); err != nil {
		fmt.Println("Error creating software:", err.Error())
		return
	}
	fmt.Printf("Created %s.\n", item.ID)
}

func (a *App) editSoftware(ctx context.Context, args []string) {
	if !a.isAdmin() {
		fmt.Println("Admin access required.")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: softedit <software-id>")
		return
	}

	item, ok := a.findSoftware(ctx, args[0])
	if !ok {
		return
	}

	fmt.Println("Press Enter to keep the current value.")
	if err := a.promptSoftware(&item); err != nil {
		return
	}

	if err := a.gw.UpdateSoftware(ctx, &item); err != nil {
		fmt.Println("Error updating software:", err.Error())
		return
	}
	fmt.Printf("Updated %s.\n", item.ID)
}

func (a *App) deleteSoftware(ctx context.Context, args []string) {
	if !a.isAdmin() {
		fmt.Println("Admin access required.")
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: softdel <software-id>")
		return
	}

	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete %s and all its tracking data?", args[0]), os.Stdout)
	if err != nil || !ok {
		return
	}

	if err := a.gw.DeleteSoftware(ctx, args[0]); err != nil {
		fmt.Println("Error deleting software:", err.Error())
		return
	}
	fmt.Printf("Deleted %s.\n", args[0])
}

// uploadLogo asks the server for a presigned URL and PUTs the file there.
func (a *App) uploadLogo(ctx context.Context, args []string) {
	if !a.isAdmin() {
		fmt.Println("Admin access required.")
		return
	}
	if len(args) < 2 {
		fmt.Println("Usage: logo <software-id> <file>")
		return
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Println("Error reading file:", err.Error())
		return
	}

	url, err := a.gw.LogoUploadURL(ctx, args[0])
	if err != nil {
		fmt.Println("Error requesting upload URL:", err.Error())
		return
	}

	if err := netx.UploadToPresignedURL(url, logoContentType(args[1]), data); err != nil {
		fmt.Println("Error uploading logo:", err.Error())
		return
	}
	fmt.Println("Logo uploaded.")
}

func logoContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

func (a *App) createAdmin(ctx context.Context) {
	if !a.isAdmin() {
		fmt.Println("Admin access required.")
		return
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return
	}

	if err := a.gw.CreateAdminUser(ctx, email, string(password), fullName); err != nil {
		fmt.Println("Error creating admin:", err.Error())
		return
	}
	fmt.Println("Admin user created.")
}

func (a *App) findSoftware(ctx context.Context, id string) (models.SoftwareItem, bool) {
	items, err := a.gw.FetchCatalog(ctx)
	if err != nil {
		fmt.Println("Error loading catalog:", err.Error())
		return models.SoftwareItem{}, false
	}
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	fmt.Println("Unknown software:", id)
	return models.SoftwareItem{}, false
}
