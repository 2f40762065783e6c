package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/evently/internal/client/images"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NonAdminRefused(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, false, now.Add(time.Hour))

	require.ErrorIs(t, ta.Create(context.Background(), nil), common.ErrorForbidden)
	assert.Contains(t, ta.out.String(), "Only administrators can create services")
	assert.Empty(t, ta.catalog.created)
}

func TestCreate_FullFlow(t *testing.T) {
	ta := newTestApp(t,
		"Sunset Hall",
		"Rooftop venue", "with a view", "",
		"50,000", "Venue",
		"./hall.png",
		"y",
	)
	ta.images.ret = "data:image/png;base64,AAAA"
	ta.loginAs(t, true, now.Add(time.Hour))

	require.NoError(t, ta.Create(context.Background(), nil))

	require.Len(t, ta.catalog.created, 1)
	assert.Equal(t, models.ServiceRegistration{
		Name:        "Sunset Hall",
		Description: "Rooftop venue\nwith a view",
		BasePrice:   50000,
		Category:    models.CategoryVenue,
		ImageURL:    "data:image/png;base64,AAAA",
	}, ta.catalog.created[0])
	assert.Equal(t, []string{"./hall.png"}, ta.images.paths)

	out := ta.out.String()
	assert.Contains(t, out, "Progress: 75%")
	assert.Contains(t, out, "Progress: 100%")
	assert.Contains(t, out, "Preview:")
	assert.Contains(t, out, "₹50,000.00")
	assert.Contains(t, out, "Service created successfully")
	assert.Contains(t, out, "Sunset Hall has been added to your services (id new-1).")
}

func TestCreate_RetriesInvalidSteps(t *testing.T) {
	ta := newTestApp(t,
		"", "", // details: both empty
		"DJ Nova", "Live music", "", // details again
		"lots", "other", // bad price
		"-5", "other", // negative price
		"15000", "party", // unknown category
		"15000", "entertainment",
		"big.png",                    // too large
		"https://cdn.example.com/dj", // url passes through
		"y",
	)
	ta.images.err = images.ErrFileTooLarge
	ta.loginAs(t, true, now.Add(time.Hour))

	require.NoError(t, ta.Create(context.Background(), nil))

	out := ta.out.String()
	assert.Contains(t, out, "name: Please provide service name")
	assert.Contains(t, out, "description: Please provide service description")
	assert.Contains(t, out, "Please enter a valid price")
	assert.Contains(t, out, "Price cannot be negative")
	assert.Contains(t, out, "Unknown service category")
	assert.Contains(t, out, "File too large")

	require.Len(t, ta.catalog.created, 1)
	got := ta.catalog.created[0]
	assert.Equal(t, "DJ Nova", got.Name)
	assert.Equal(t, 15000.0, got.BasePrice)
	assert.Equal(t, models.CategoryEntertainment, got.Category)
	assert.Equal(t, "https://cdn.example.com/dj", got.ImageURL)
}

func TestCreate_RejectsNonFinitePrice(t *testing.T) {
	ta := newTestApp(t,
		"DJ Nova", "Live music", "",
		"Inf", "entertainment",
		"NaN", "entertainment",
		"-inf", "entertainment",
		"15000", "entertainment",
		"",
		"y",
	)
	ta.loginAs(t, true, now.Add(time.Hour))

	require.NoError(t, ta.Create(context.Background(), nil))

	assert.Equal(t, 3, strings.Count(ta.out.String(), "Please enter a valid price"))
	require.Len(t, ta.catalog.created, 1)
	assert.Equal(t, 15000.0, ta.catalog.created[0].BasePrice)
}

func TestCreate_Declined(t *testing.T) {
	ta := newTestApp(t, "Hall", "Big", "", "100", "venue", "", "n")
	ta.loginAs(t, true, now.Add(time.Hour))

	require.NoError(t, ta.Create(context.Background(), nil))
	assert.Empty(t, ta.catalog.created)
	assert.Contains(t, ta.out.String(), "Cancelled")
}

func TestCreate_InputEnds(t *testing.T) {
	ta := newTestApp(t, "Hall")
	ta.loginAs(t, true, now.Add(time.Hour))

	require.Error(t, ta.Create(context.Background(), nil))
	assert.Empty(t, ta.catalog.created)
}

func TestEdit_KeepsCurrentValues(t *testing.T) {
	ta := newTestApp(t,
		"",        // keep name
		"",        // keep description
		"55000",   // new price
		"",        // keep category
		"",        // keep image
		"y",
	)
	recs := sampleRecords()
	recs[0].ImageURL = "https://cdn.example.com/hall.png"
	ta.catalog.records = recs
	ta.loginAs(t, true, now.Add(time.Hour))

	require.NoError(t, ta.Edit(context.Background(), []string{"s1"}))

	assert.Equal(t, models.ServiceRegistration{
		Name:        "Sunset Hall",
		Description: "Rooftop venue",
		BasePrice:   55000,
		Category:    models.CategoryVenue,
		ImageURL:    "https://cdn.example.com/hall.png",
	}, ta.catalog.updated["s1"])
	assert.Contains(t, ta.out.String(), "Service updated successfully")
	assert.Empty(t, ta.images.paths)
}

func TestEdit_RemoveImage(t *testing.T) {
	ta := newTestApp(t, "", "", "", "", "-", "y")
	recs := sampleRecords()
	recs[0].ImageURL = "https://cdn.example.com/hall.png"
	ta.catalog.records = recs
	ta.loginAs(t, true, now.Add(time.Hour))

	require.NoError(t, ta.Edit(context.Background(), []string{"s1"}))
	assert.Empty(t, ta.catalog.updated["s1"].ImageURL)
}

func TestEdit_NotFoundAndForbidden(t *testing.T) {
	ta := newTestApp(t)
	ta.loginAs(t, true, now.Add(time.Hour))
	require.ErrorIs(t, ta.Edit(context.Background(), []string{"nope"}), common.ErrorNotFound)
	assert.Contains(t, ta.out.String(), "Service not found")

	ta = newTestApp(t)
	require.ErrorIs(t, ta.Edit(context.Background(), []string{"s1"}), common.ErrorForbidden)
	assert.Contains(t, ta.out.String(), "Only administrators can update services")
	assert.Zero(t, ta.catalog.gotCalls)
}

func TestCreate_BackendFailure(t *testing.T) {
	ta := newTestApp(t, "Hall", "Big", "", "100", "venue", "", "y")
	ta.catalog.mutErr = common.ErrorForbidden
	ta.loginAs(t, true, now.Add(time.Hour))

	require.Error(t, ta.Create(context.Background(), nil))
	assert.Contains(t, ta.out.String(), "Only administrators can create services")
}
