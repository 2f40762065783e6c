package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/evently/internal/client/form"
	"github.com/dmitrijs2005/evently/internal/client/images"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/services"
	"github.com/dmitrijs2005/evently/internal/common"
)

// errRetryStep makes fillDraft ask for the current step again.
var errRetryStep = errors.New("retry step")

// Create walks an administrator through the service form and submits it.
func (a *App) Create(ctx context.Context, _ []string) error {
	if !a.canMutate(ctx) {
		a.say(services.MutationErrorMessage("create", common.ErrorForbidden))
		return common.ErrorForbidden
	}

	a.say("Create New Service")
	d := form.New()
	ok, err := a.runForm(ctx, d, "Create this service?")
	if err != nil || !ok {
		return err
	}

	rec, err := a.catalogService.Create(ctx, d.Registration())
	if err != nil {
		a.log.Warn(ctx, "create failed", "err", err)
		a.reportFieldErrors(err)
		a.say(services.MutationErrorMessage("create", err))
		return err
	}

	a.say("Service created successfully")
	name := d.Registration().Name
	if rec != nil && rec.ID != "" {
		a.notify("%s has been added to your services (id %s).", name, rec.ID)
	} else {
		a.notify("%s has been added to your services.", name)
	}
	return nil
}

// Edit loads a service into the form and submits the changes.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.canMutate(ctx) {
		a.say(services.MutationErrorMessage("update", common.ErrorForbidden))
		return common.ErrorForbidden
	}

	id, err := a.idArg(args, "Enter service id to edit")
	if err != nil {
		return err
	}
	if id == "" {
		a.say("Usage: edit <id>")
		return nil
	}

	rec, err := a.catalogService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.say("Service not found")
		} else {
			a.say("Failed to load service")
		}
		return err
	}

	a.say("Update Service (press Enter to keep the current value)")
	d := form.FromRecord(*rec)
	ok, err := a.runForm(ctx, d, "Save changes?")
	if err != nil || !ok {
		return err
	}

	if _, err := a.catalogService.Update(ctx, d.ID, d.Registration()); err != nil {
		a.log.Warn(ctx, "update failed", "id", d.ID, "err", err)
		a.reportFieldErrors(err)
		a.say(services.MutationErrorMessage("update", err))
		return err
	}

	a.say("Service updated successfully")
	a.notify("%s has been updated.", d.Registration().Name)
	return nil
}

// runForm fills d step by step, shows the preview and asks for confirmation.
// It reports false when the user declines.
func (a *App) runForm(ctx context.Context, d *form.Draft, question string) (bool, error) {
	for _, step := range form.Steps {
		for {
			err := a.promptStep(ctx, d, step)
			if err == nil {
				err = d.ValidateStep(step)
			}
			if err == nil {
				break
			}
			if errors.Is(err, errRetryStep) {
				continue
			}
			if errors.Is(err, common.ErrorValidation) {
				a.reportFieldErrors(err)
				continue
			}
			return false, err
		}
		a.notify("Progress: %d%%", d.Progress())
	}

	a.say("Preview:")
	if err := d.Preview(a.out); err != nil {
		return false, err
	}

	ok, err := confirm(a.reader, question, a.out)
	if err != nil {
		return false, err
	}
	if !ok {
		a.say("Cancelled")
	}
	return ok, nil
}

func (a *App) promptStep(ctx context.Context, d *form.Draft, step form.Step) error {
	switch step {
	case form.StepDetails:
		return a.promptDetails(d)
	case form.StepPricing:
		return a.promptPricing(d)
	case form.StepMedia:
		return a.promptMedia(ctx, d)
	default:
		return fmt.Errorf("unknown form step %q", step)
	}
}

func (a *App) promptDetails(d *form.Draft) error {
	name, err := GetWithDefault(a.reader, "Service name", d.Name, a.out)
	if err != nil {
		return err
	}
	d.Name = name

	prompt := "Description"
	if d.Description != "" {
		prompt = fmt.Sprintf("Description (current: %q)", d.Description)
	}
	desc, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		d.Description = desc
	}
	return nil
}

func (a *App) promptPricing(d *form.Draft) error {
	current := ""
	if d.BasePrice != 0 {
		current = strconv.FormatFloat(d.BasePrice, 'f', -1, 64)
	}
	raw, err := GetWithDefault(a.reader, "Base price (₹)", current, a.out)
	if err != nil {
		return err
	}

	cats := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		cats = append(cats, string(c))
	}
	cat, err := GetWithDefault(a.reader, "Category ("+strings.Join(cats, ", ")+")", string(d.Category), a.out)
	if err != nil {
		return err
	}
	d.Category = models.Category(strings.ToLower(cat))

	if raw != "" {
		price, perr := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if perr != nil || math.IsInf(price, 0) || math.IsNaN(price) {
			a.say("  basePrice: Please enter a valid price")
			return errRetryStep
		}
		d.BasePrice = price
	}
	return nil
}

func (a *App) promptMedia(ctx context.Context, d *form.Draft) error {
	prompt := "Image URL or local file path (optional)"
	if d.ImageURL != "" {
		prompt += ", '-' to remove the current image"
	}
	raw, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	switch raw {
	case "":
		return nil
	case "-":
		d.ImageURL = ""
		return nil
	}

	ref, err := images.Resolve(ctx, a.images, raw)
	switch {
	case err == nil:
		d.ImageURL = ref
		return nil
	case errors.Is(err, images.ErrFileTooLarge):
		a.say("  File too large. Please select an image smaller than 5MB")
	case errors.Is(err, images.ErrNotImage):
		a.say("  Please select an image file")
	default:
		a.log.Warn(ctx, "image encoding failed", "err", err)
		a.say("  Could not read the image")
	}
	return errRetryStep
}
