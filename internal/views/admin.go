package views

import (
	"context"
	"strings"

	"shortly-web/internal/models"
	"shortly-web/internal/session"

	"golang.org/x/sync/errgroup"
)

// AdminPage is rendered only for admin-flagged sessions. The flag decides what is
// shown here; the backend still authorizes every admin call itself.
type AdminPage struct {
	Outcome Outcome
	User    *models.User
	Search  string

	Stats      *models.AdminStats
	URLs       []models.TopURL
	TotalURLs  int
	StatsError string
	URLsError  string
}

// LoadAdmin hydrates the session, stops at the first non-admin answer, and
// otherwise fetches the summary and the top URLs concurrently.
func LoadAdmin(ctx context.Context, id Identity, admin AdminAPI, search string, limit int) (*AdminPage, error) {
	if err := id.Hydrate(ctx); err != nil {
		return nil, err
	}
	snap := id.Snapshot()
	if snap.State != session.StateAuthenticated || snap.User == nil {
		return &AdminPage{Outcome: OutcomeRedirectLogin}, nil
	}
	if !snap.User.IsAdmin {
		return &AdminPage{Outcome: OutcomeDenied, User: snap.User}, nil
	}

	page := &AdminPage{Outcome: OutcomeReady, User: snap.User, Search: strings.TrimSpace(search)}
	var (
		stats *models.AdminStats
		top   *models.TopURLsResponse
		g     errgroup.Group
	)
	// each fetch reports its own failure, neither cancels the other
	g.Go(func() error {
		var err error
		if stats, err = admin.Stats(ctx, snap.Token); err != nil {
			page.StatsError = errorMessage(err, "Failed to load stats")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if top, err = admin.TopURLs(ctx, snap.Token, limit); err != nil {
			page.URLsError = errorMessage(err, "Failed to load top URLs")
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page.Stats = stats
	page.URLs = []models.TopURL{}
	if top != nil {
		page.TotalURLs = len(top.URLs)
		for _, u := range top.URLs {
			if page.matches(u) {
				page.URLs = append(page.URLs, u)
			}
		}
	}
	return page, nil
}

func (p *AdminPage) matches(u models.TopURL) bool {
	if p.Search == "" {
		return true
	}
	return containsFold(u.OriginalURL, p.Search) ||
		containsFold(u.ShortCode, p.Search) ||
		containsFold(u.UserEmail, p.Search)
}

// AdminDeleteURL removes any user's link. Non-admin sessions are refused
// before any admin request is made.
func AdminDeleteURL(ctx context.Context, id Identity, admin AdminAPI, shortCode string) (Outcome, string, error) {
	if err := id.Hydrate(ctx); err != nil {
		return OutcomeRedirectLogin, "", err
	}
	snap := id.Snapshot()
	if snap.State != session.StateAuthenticated || snap.User == nil {
		return OutcomeRedirectLogin, "", nil
	}
	if !snap.User.IsAdmin {
		return OutcomeDenied, "", nil
	}

	_, err := admin.DeleteURL(ctx, shortCode, snap.Token)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return OutcomeReady, "", ctxErr
	}
	if err != nil {
		return OutcomeReady, errorMessage(err, "Failed to delete URL"), nil
	}
	return OutcomeReady, "", nil
}
