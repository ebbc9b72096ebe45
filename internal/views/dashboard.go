package views

import (
	"context"
	"fmt"
	"strings"

	"shortly-web/internal/format"
	"shortly-web/internal/models"
)

const (
	emptyDashboardMessage = "Create your first short link to get started"
	noMatchMessage        = "No links match your search"
)

type Dashboard struct {
	Outcome Outcome

	Search string
	// Links is the search-filtered list; the totals always cover every link
	Links       []models.ShortURL
	TotalLinks  int
	TotalClicks int64
	AvgClicks   string
	Summary     string
	Empty       string

	Error string
}

func LoadDashboard(ctx context.Context, src TokenSource, urls URLAPI, search string) (*Dashboard, error) {
	token, outcome, err := requireToken(ctx, src)
	if err != nil || outcome != OutcomeReady {
		return &Dashboard{Outcome: outcome}, err
	}

	list, err := urls.List(ctx, token)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		d := NewDashboard(nil, search)
		d.Error = errorMessage(err, "Failed to load URLs")
		return d, nil
	}
	return NewDashboard(list, search), nil
}

// NewDashboard derives the dashboard figures from a fetched list
func NewDashboard(list []models.ShortURL, search string) *Dashboard {
	search = strings.TrimSpace(search)
	d := &Dashboard{
		Outcome:    OutcomeReady,
		Search:     search,
		TotalLinks: len(list),
		Links:      []models.ShortURL{},
	}

	for _, u := range list {
		d.TotalClicks += u.Clicks
		if search == "" || containsFold(u.OriginalURL, search) || containsFold(u.ShortCode, search) {
			d.Links = append(d.Links, u)
		}
	}

	d.AvgClicks = "0"
	if d.TotalLinks > 0 {
		d.AvgClicks = format.FormatNumber(roundDiv(d.TotalClicks, int64(d.TotalLinks)))
	}
	d.Summary = fmt.Sprintf("%d of %d links", len(d.Links), d.TotalLinks)

	switch {
	case len(d.Links) > 0:
	case search != "":
		d.Empty = noMatchMessage
	default:
		d.Empty = emptyDashboardMessage
	}
	return d
}

// DeleteLink deletes one of the caller's links. The returned message is empty on
// success and otherwise meant to be shown inline.
func DeleteLink(ctx context.Context, src TokenSource, urls URLAPI, shortCode string) (Outcome, string, error) {
	token, outcome, err := requireToken(ctx, src)
	if err != nil || outcome != OutcomeReady {
		return outcome, "", err
	}

	_, err = urls.Delete(ctx, shortCode, token)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome, "", ctxErr
	}
	if err != nil {
		return outcome, errorMessage(err, "Failed to delete URL"), nil
	}
	return outcome, "", nil
}

// roundDiv is a/b rounded half up, for non-negative a and positive b
func roundDiv(a, b int64) int64 {
	return (2*a + b) / (2 * b)
}
