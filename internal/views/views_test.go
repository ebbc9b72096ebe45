package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"shortly-web/internal/api"
	"shortly-web/internal/cache"
	"shortly-web/internal/format"
	"shortly-web/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLinks() []models.ShortURL {
	return []models.ShortURL{
		{ID: "1", OriginalURL: "https://Example.com/docs", ShortCode: "docs1", Clicks: 10},
		{ID: "2", OriginalURL: "https://golang.org", ShortCode: "GoLang", Clicks: 5},
		{ID: "3", OriginalURL: "https://news.ycombinator.com", ShortCode: "hn", Clicks: 0},
	}
}

func TestProtectedViewsRedirectWithoutToken(t *testing.T) {
	store, _ := newSession("", nil)
	urls := &fakeURLs{}
	ctx := context.Background()

	d, err := LoadDashboard(ctx, store, urls, "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)

	s, err := LoadStats(ctx, store, urls, "abc", "http://app")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectLogin, s.Outcome)

	p, err := NewShortenPage(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectLogin, p.Outcome)

	outcome, _, err := DeleteLink(ctx, store, urls, "abc")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectLogin, outcome)

	assert.Empty(t, urls.calls)
}

func TestDashboardTotals(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{list: sampleLinks()}

	d, err := LoadDashboard(context.Background(), store, urls, "")

	require.NoError(t, err)
	assert.Equal(t, OutcomeReady, d.Outcome)
	assert.Equal(t, "tok", urls.token)
	assert.Equal(t, 3, d.TotalLinks)
	assert.Equal(t, int64(15), d.TotalClicks)
	assert.Equal(t, "5", d.AvgClicks)
	assert.Equal(t, "3 of 3 links", d.Summary)
	assert.Empty(t, d.Empty)
}

func TestDashboardEmpty(t *testing.T) {
	d := NewDashboard(nil, "")

	assert.Equal(t, 0, d.TotalLinks)
	assert.Equal(t, int64(0), d.TotalClicks)
	assert.Equal(t, "0", d.AvgClicks)
	assert.Equal(t, "0 of 0 links", d.Summary)
	assert.Equal(t, "Create your first short link to get started", d.Empty)
	assert.NotNil(t, d.Links)
}

func TestDashboardSearch(t *testing.T) {
	d := NewDashboard(sampleLinks(), "EXAMPLE")
	require.Len(t, d.Links, 1)
	assert.Equal(t, "docs1", d.Links[0].ShortCode)
	assert.Equal(t, "1 of 3 links", d.Summary)
	// totals cover every link
	assert.Equal(t, int64(15), d.TotalClicks)

	d = NewDashboard(sampleLinks(), "golang")
	assert.Len(t, d.Links, 1)

	d = NewDashboard(sampleLinks(), "nothing-matches")
	assert.Empty(t, d.Links)
	assert.Equal(t, "No links match your search", d.Empty)
}

func TestDashboardAverageRoundsHalfUp(t *testing.T) {
	links := []models.ShortURL{{Clicks: 1}, {Clicks: 2}}
	assert.Equal(t, "2", NewDashboard(links, "").AvgClicks)

	links = []models.ShortURL{{Clicks: 1}, {Clicks: 1}, {Clicks: 2}}
	assert.Equal(t, "1", NewDashboard(links, "").AvgClicks)

	links = []models.ShortURL{{Clicks: 3000}, {Clicks: 0}}
	assert.Equal(t, "1.5K", NewDashboard(links, "").AvgClicks)
}

func TestInternalErrorsReadAsFallback(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{listErr: errors.New("decode response: dial tcp 10.0.0.7:6379: connection refused")}

	d, err := LoadDashboard(context.Background(), store, urls, "")

	require.NoError(t, err)
	assert.Equal(t, "Failed to load URLs", d.Error)
	assert.Equal(t, "An error occurred", ErrorMessage(errors.New("failed to persist token")))
	assert.Equal(t, "Email already registered", ErrorMessage(&api.Error{StatusCode: 400, Message: "Email already registered"}))
}

func TestDashboardFetchErrorIsInline(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{listErr: &api.Error{StatusCode: 500, Message: "An error occurred"}}

	d, err := LoadDashboard(context.Background(), store, urls, "")

	require.NoError(t, err)
	assert.Equal(t, OutcomeReady, d.Outcome)
	assert.Equal(t, "An error occurred", d.Error)
}

func TestDashboardCancelledRendersNothing(t *testing.T) {
	store, _ := newSession("tok", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := LoadDashboard(ctx, store, &fakeURLs{list: sampleLinks()}, "")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
}

func TestDeleteLink(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{}

	outcome, msg, err := DeleteLink(context.Background(), store, urls, "docs1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeReady, outcome)
	assert.Empty(t, msg)

	urls.deleteErr = &api.Error{StatusCode: 404, Message: "URL not found"}
	_, msg, err = DeleteLink(context.Background(), store, urls, "docs1")
	require.NoError(t, err)
	assert.Equal(t, "URL not found", msg)
}

func TestShortenRejectsInvalidInputBeforeAnyCall(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{}

	tests := []struct {
		form ShortenForm
		want error
	}{
		{form: ShortenForm{URL: "not-a-url"}, want: format.ErrInvalidURL},
		{form: ShortenForm{URL: ""}, want: format.ErrInvalidURL},
		{form: ShortenForm{URL: "https://example.com", CustomAlias: "ab"}, want: format.ErrInvalidAlias},
		{form: ShortenForm{URL: "https://example.com", ExpirationDays: "400"}, want: format.ErrInvalidExpiration},
		{form: ShortenForm{URL: "https://example.com", ExpirationDays: "soon"}, want: format.ErrInvalidExpiration},
	}

	for _, tt := range tests {
		page, err := Shorten(context.Background(), store, urls, tt.form)
		require.NoError(t, err)
		assert.Equal(t, tt.want.Error(), page.Error)
		assert.Empty(t, page.ShortURL)
	}
	assert.Empty(t, urls.calls)
}

func TestShortenSuccess(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{}

	page, err := Shorten(context.Background(), store, urls, ShortenForm{
		URL:            " https://example.com/long ",
		CustomAlias:    "my-link",
		ExpirationDays: "30",
	})

	require.NoError(t, err)
	assert.Empty(t, page.Error)
	assert.Equal(t, "http://s.test/abc1234", page.ShortURL)
	assert.Equal(t, "abc1234", page.ShortCode)
	assert.Equal(t, api.ShortenOptions{CustomAlias: "my-link", ExpirationDays: 30}, *urls.shortened)
	assert.Equal(t, "tok", urls.token)
}

func TestShortenBackendErrorAndMissingToken(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{shortenErr: &api.Error{StatusCode: 400, Message: "Alias already taken"}}

	page, err := Shorten(context.Background(), store, urls, ShortenForm{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alias already taken", page.Error)

	anonymous, _ := newSession("", nil)
	page, err = Shorten(context.Background(), anonymous, &fakeURLs{}, ShortenForm{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectLogin, page.Outcome)
}

func TestPreviewOnlyForValidURLs(t *testing.T) {
	log, _ := test.NewNullLogger()
	title := "Example"
	urls := &fakeURLs{preview: &models.URLPreview{Title: &title, URL: "https://example.com"}}
	p := NewPreviewer(urls, nil, log)

	assert.Nil(t, p.Preview(context.Background(), "example.com"))
	assert.Empty(t, urls.calls)

	got := p.Preview(context.Background(), "https://example.com")
	require.NotNil(t, got)
	assert.Equal(t, "Example", *got.Title)

	urls.previewErr = errors.New("timeout")
	urls.preview = nil
	assert.Nil(t, p.Preview(context.Background(), "https://example.org"))
}

func TestPreviewIsCached(t *testing.T) {
	s := miniredis.RunT(t)
	c := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { _ = c.Close() })

	log, _ := test.NewNullLogger()
	title := "Example"
	urls := &fakeURLs{preview: &models.URLPreview{Title: &title, URL: "https://example.com"}}
	p := NewPreviewer(urls, c, log)

	first := p.Preview(context.Background(), "https://example.com")
	second := p.Preview(context.Background(), "https://example.com")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first.Title, *second.Title)
	assert.Equal(t, []string{"preview"}, urls.calls)
	assert.Equal(t, time.Hour, s.TTL(cache.PreviewKey("https://example.com")))
}

func TestPreviewFailuresAreNotCached(t *testing.T) {
	s := miniredis.RunT(t)
	c := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { _ = c.Close() })

	log, _ := test.NewNullLogger()
	urls := &fakeURLs{previewErr: errors.New("boom")}
	p := NewPreviewer(urls, c, log)

	assert.Nil(t, p.Preview(context.Background(), "https://example.com"))
	assert.False(t, s.Exists(cache.PreviewKey("https://example.com")))
}

func TestStatsPage(t *testing.T) {
	stats := &models.URLStats{
		ShortCode:   "abc",
		TotalClicks: 12,
		TopReferrers: []models.ReferrerCount{
			{Referrer: "", Count: 8},
			{Referrer: "twitter.com", Count: 2},
		},
		ClicksByCountry: []models.CountryCount{{Country: "US", Count: 4}, {Country: "DE", Count: 1}},
		ClicksByDevice:  []models.DeviceCount{{Device: "mobile", Count: 0}},
		ClicksOverTime:  []models.TimeSeriesData{{Date: "2024-03-09", Count: 3}, {Date: "2024-03-10", Count: 6}},
	}

	page := NewStatsPage(stats, "http://app.test")

	assert.Equal(t, "http://app.test/abc", page.ShortURL)
	require.Len(t, page.Referrers, 2)
	assert.Equal(t, "Direct", page.Referrers[0].Label)
	assert.InDelta(t, 100, page.Referrers[0].Percent, 1e-9)
	assert.InDelta(t, 25, page.Referrers[1].Percent, 1e-9)
	assert.InDelta(t, 25, page.Countries[1].Percent, 1e-9)
	// all-zero series divide by the floor of 1
	assert.InDelta(t, 0, page.Devices[0].Percent, 1e-9)
	assert.InDelta(t, 60, page.Timeline[0].Height, 1e-9)
	assert.InDelta(t, 120, page.Timeline[1].Height, 1e-9)
}

func TestLoadStats(t *testing.T) {
	store, _ := newSession("tok", nil)
	urls := &fakeURLs{stats: &models.URLStats{ShortCode: "abc"}}

	page, err := LoadStats(context.Background(), store, urls, "abc", "http://app.test")
	require.NoError(t, err)
	assert.Equal(t, "http://app.test/abc", page.ShortURL)
	assert.Empty(t, page.Referrers)

	urls.statsErr = &api.Error{StatusCode: 404, Message: "URL not found"}
	page, err = LoadStats(context.Background(), store, urls, "abc", "http://app.test")
	require.NoError(t, err)
	assert.Equal(t, "URL not found", page.Error)
}

func TestCredentialsValidate(t *testing.T) {
	c := Credentials{Email: " a@b.c ", Password: "pw"}
	assert.Empty(t, c.Validate(false))
	assert.Equal(t, "a@b.c", c.Email)

	assert.Equal(t, "Email and password are required", (&Credentials{Email: "a@b.c"}).Validate(false))
	assert.Equal(t, "Please enter a valid email address", (&Credentials{Email: "ab", Password: "pw"}).Validate(false))
	assert.Equal(t, "Passwords do not match", (&Credentials{Email: "a@b.c", Password: "pw", Confirm: "px"}).Validate(true))
	assert.Empty(t, (&Credentials{Email: "a@b.c", Password: "pw", Confirm: "pw"}).Validate(true))
}

func TestLoadNav(t *testing.T) {
	store, _ := newSession("tok", &models.User{ID: "u1", Email: "a@b.c", IsAdmin: true})
	nav, err := LoadNav(context.Background(), store)
	require.NoError(t, err)
	assert.True(t, nav.Authenticated)
	assert.True(t, nav.Admin)

	anonymous, _ := newSession("", nil)
	nav, err = LoadNav(context.Background(), anonymous)
	require.NoError(t, err)
	assert.False(t, nav.Authenticated)
}
