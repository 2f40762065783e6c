package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/evently/internal/client/catalog"
	"github.com/dmitrijs2005/evently/internal/client/form"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/services"
	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/gosuri/uitable"
)

// idArg returns the id given on the command line or prompts for it.
func (a *App) idArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Show prints one service. Edit and delete hints are only offered to
// administrators.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter service id")
	if err != nil {
		return err
	}
	if id == "" {
		a.say("Usage: show <id>")
		return nil
	}

	rec, err := a.catalogService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.say("Service not found")
		} else {
			a.log.Warn(ctx, "service fetch failed", "id", id, "err", err)
			a.say("Failed to load service")
		}
		return err
	}

	a.say(renderDetails(rec))

	if a.isLoggedIn(ctx) {
		if marked, err := a.bookmarkService.IsBookmarked(ctx, rec.ID); err == nil && marked {
			a.say("★ Bookmarked")
		}
	}
	if a.canMutate(ctx) {
		a.notify("Admin: 'edit %s' or 'delete %s'", rec.ID, rec.ID)
	}
	return nil
}

func renderDetails(r *models.ServiceRecord) string {
	image := r.ImageURL
	if image == "" {
		image = "No image available"
	} else if strings.HasPrefix(image, "data:") {
		image = "inline image"
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("Name:", r.Name)
	table.AddRow("Category:", r.Category)
	table.AddRow("Price:", form.FormatPrice(r.BasePrice))
	table.AddRow("Description:", r.Description)
	table.AddRow("Image:", image)
	table.AddRow("Listed on:", r.CreatedAt.Format(dateLayout))
	table.AddRow("Last updated:", r.UpdatedAt.Format(dateLayout))
	table.AddRow("ID:", r.ID)
	return table.String()
}

// Delete asks for confirmation and deletes a service. The mutation gate is
// checked here to fail fast and again by the service right before the call.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.canMutate(ctx) {
		a.say(services.MutationErrorMessage("delete", common.ErrorForbidden))
		return common.ErrorForbidden
	}

	id, err := a.idArg(args, "Enter service id to delete")
	if err != nil {
		return err
	}
	if id == "" {
		a.say("Usage: delete <id>")
		return nil
	}

	label := id
	if rec, err := a.catalogService.Get(ctx, id); err == nil {
		label = rec.Name
	}

	ok, err := confirm(a.reader, "Delete "+label+"? This action cannot be undone.", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.say("Cancelled")
		return nil
	}

	if err := a.catalogService.Delete(ctx, id); err != nil {
		a.log.Warn(ctx, "delete failed", "id", id, "err", err)
		a.say(services.MutationErrorMessage("delete", err))
		return err
	}
	a.say("Service deleted successfully")
	return nil
}

// Bookmark toggles the bookmark on a service.
func (a *App) Bookmark(ctx context.Context, args []string) error {
	if !a.isLoggedIn(ctx) {
		a.say("Please log in to bookmark services")
		return common.ErrorUnauthorized
	}

	id, err := a.idArg(args, "Enter service id")
	if err != nil {
		return err
	}
	if id == "" {
		a.say("Usage: bookmark <id>")
		return nil
	}

	on, err := a.bookmarkService.Toggle(ctx, id)
	if err != nil {
		a.log.Error(ctx, "bookmark toggle failed", "id", id, "err", err)
		a.say("Failed to update bookmark")
		return err
	}
	if on {
		a.say("Service bookmarked")
	} else {
		a.say("Bookmark removed")
	}
	return nil
}

// Bookmarks lists bookmarked services, newest first. Names are looked up in
// the catalog when it can be fetched.
func (a *App) Bookmarks(ctx context.Context, _ []string) error {
	if !a.isLoggedIn(ctx) {
		a.say("Please log in to see your bookmarks")
		return common.ErrorUnauthorized
	}

	ids, err := a.bookmarkService.List(ctx)
	if err != nil {
		a.log.Error(ctx, "bookmark list failed", "err", err)
		a.say("Failed to load bookmarks")
		return err
	}
	if len(ids) == 0 {
		a.say("No bookmarks yet")
		return nil
	}

	byID := map[string]models.ServiceRecord{}
	if listing, err := a.catalogService.List(ctx, catalog.DefaultState()); err == nil {
		for _, r := range listing.Services {
			byID[r.ID] = r
		}
	} else {
		a.log.Debug(ctx, "bookmark names unavailable", "err", err)
	}

	table := uitable.New()
	table.AddRow("ID", "NAME", "PRICE")
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			table.AddRow(id, "-", "-")
			continue
		}
		table.AddRow(id, r.Name, form.FormatPrice(r.BasePrice))
	}
	a.say(table.String())
	return nil
}
