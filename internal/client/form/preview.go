package form

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

const currencySymbol = "₹"

// FormatPrice renders v as a rupee amount with grouping and two decimals.
func FormatPrice(v float64) string {
	return currencySymbol + humanize.FormatFloat("#,###.##", v)
}

// Preview writes the card the service will be shown as.
func (d *Draft) Preview(w io.Writer) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = "Service Name"
	}
	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		desc = "Service description will appear here"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "┌ %s [%s]\n", name, d.Category)
	fmt.Fprintf(&b, "│ %s\n", FormatPrice(d.BasePrice))
	fmt.Fprintf(&b, "│ %s\n", desc)
	fmt.Fprintf(&b, "│ image: %s\n", imageLabel(d.ImageURL))
	fmt.Fprintf(&b, "└ %d%% complete\n", d.Progress())

	_, err := io.WriteString(w, b.String())
	return err
}

func imageLabel(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return "none"
	case strings.HasPrefix(ref, "data:"):
		mime, _, _ := strings.Cut(strings.TrimPrefix(ref, "data:"), ";")
		return fmt.Sprintf("inline %s (%s)", mime, humanize.Bytes(uint64(len(ref))))
	default:
		return ref
	}
}
