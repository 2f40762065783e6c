// Package form holds the in-progress state of the create/edit service form.
//
// A Draft lives only while the form is open: it is seeded empty (create) or
// from a fetched record (edit), validated step by step, and dropped once the
// backend accepts it or the user aborts. It is never persisted.
package form

import (
	"strings"

	"github.com/dmitrijs2005/evently/internal/client/models"
)

// Step groups the fields entered together.
type Step string

const (
	StepDetails Step = "details"
	StepPricing Step = "pricing"
	StepMedia   Step = "media"
)

// Steps lists the steps in entry order.
var Steps = []Step{StepDetails, StepPricing, StepMedia}

var stepFields = map[Step][]string{
	StepDetails: {"name", "description"},
	StepPricing: {"basePrice", "category"},
	StepMedia:   {"imageUrl"},
}

// Fields returns the json names of the fields edited in s.
func (s Step) Fields() []string {
	return stepFields[s]
}

type Draft struct {
	Name        string
	Description string
	BasePrice   float64
	Category    models.Category
	ImageURL    string

	// ID is set when editing an existing record.
	ID string
}

func New() *Draft {
	return &Draft{Category: models.CategoryOther}
}

// FromRecord seeds a draft for editing r.
func FromRecord(r models.ServiceRecord) *Draft {
	d := &Draft{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
	if d.Category == "" {
		d.Category = models.CategoryOther
	}
	return d
}

func (d *Draft) Editing() bool {
	return d.ID != ""
}

// Registration returns the payload sent to the backend.
func (d *Draft) Registration() models.ServiceRegistration {
	return models.ServiceRegistration{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		BasePrice:   d.BasePrice,
		Category:    d.Category,
		ImageURL:    strings.TrimSpace(d.ImageURL),
	}
}

// Validate checks every field. It returns nil or models.ValidationErrors.
func (d *Draft) Validate() error {
	return models.Validate(d.Registration())
}

// ValidateStep checks only the fields of step s.
func (d *Draft) ValidateStep(s Step) error {
	err := d.Validate()
	if err == nil {
		return nil
	}
	verrs, ok := err.(models.ValidationErrors)
	if !ok {
		return err
	}
	if only := verrs.Only(s.Fields()...); len(only) > 0 {
		return only
	}
	return nil
}

// Progress is the share of required fields filled in, from 0 to 100. A zero
// price counts as not filled.
func (d *Draft) Progress() int {
	filled := 0
	if strings.TrimSpace(d.Name) != "" {
		filled++
	}
	if strings.TrimSpace(d.Description) != "" {
		filled++
	}
	if d.BasePrice > 0 {
		filled++
	}
	if d.Category != "" {
		filled++
	}
	return filled * 100 / 4
}
