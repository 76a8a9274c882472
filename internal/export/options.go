package export

import "time"

const (
	DefaultTitle     = "Catalogue produits"
	DefaultSiteLabel = "stockbackup.cosinus.ma"
)

// Options controls what each product sheet shows.
type Options struct {
	Title          string
	SiteLabel      string
	ShowPrice      bool
	ShowDimensions bool
	// Date is printed in the header. Zero means now.
	Date time.Time
}

func DefaultOptions() Options {
	return Options{
		Title:          DefaultTitle,
		SiteLabel:      DefaultSiteLabel,
		ShowPrice:      true,
		ShowDimensions: true,
	}
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.SiteLabel == "" {
		o.SiteLabel = DefaultSiteLabel
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	return o
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// frenchDate formats like "14 octobre 2026".
func frenchDate(t time.Time) string {
	return t.Format("02") + " " + frenchMonths[t.Month()-1] + " " + t.Format("2006")
}
