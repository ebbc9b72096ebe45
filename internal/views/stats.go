package views

import (
	"context"

	"shortly-web/internal/models"
)

// TimelineHeight is the pixel height of the tallest time series column
const TimelineHeight = 120

type Bar struct {
	Label   string
	Value   int64
	Percent float64 // share of the largest value in the series, 0..100
}

type Point struct {
	Date   string
	Count  int64
	Height float64 // pixels, 0..TimelineHeight
}

type StatsPage struct {
	Outcome   Outcome
	ShortCode string
	ShortURL  string
	Stats     *models.URLStats

	Referrers []Bar
	Countries []Bar
	Devices   []Bar
	Timeline  []Point

	Error string
}

// LoadStats fetches the analytics of one link. appURL is the public base the short link lives under.
func LoadStats(ctx context.Context, src TokenSource, urls URLAPI, shortCode, appURL string) (*StatsPage, error) {
	token, outcome, err := requireToken(ctx, src)
	if err != nil || outcome != OutcomeReady {
		return &StatsPage{Outcome: outcome, ShortCode: shortCode}, err
	}

	stats, err := urls.Stats(ctx, shortCode, token)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return &StatsPage{
			Outcome:   OutcomeReady,
			ShortCode: shortCode,
			Error:     errorMessage(err, "Failed to load stats"),
		}, nil
	}
	return NewStatsPage(stats, appURL), nil
}

func NewStatsPage(stats *models.URLStats, appURL string) *StatsPage {
	page := &StatsPage{
		Outcome:   OutcomeReady,
		ShortCode: stats.ShortCode,
		ShortURL:  appURL + "/" + stats.ShortCode,
		Stats:     stats,
	}

	referrers := make([]Bar, 0, len(stats.TopReferrers))
	for _, r := range stats.TopReferrers {
		label := r.Referrer
		if label == "" {
			label = "Direct"
		}
		referrers = append(referrers, Bar{Label: label, Value: r.Count})
	}
	countries := make([]Bar, 0, len(stats.ClicksByCountry))
	for _, c := range stats.ClicksByCountry {
		countries = append(countries, Bar{Label: c.Country, Value: c.Count})
	}
	devices := make([]Bar, 0, len(stats.ClicksByDevice))
	for _, d := range stats.ClicksByDevice {
		devices = append(devices, Bar{Label: d.Device, Value: d.Count})
	}

	page.Referrers = scaleBars(referrers)
	page.Countries = scaleBars(countries)
	page.Devices = scaleBars(devices)
	page.Timeline = scaleTimeline(stats.ClicksOverTime)
	return page
}

// scaleBars sets each bar's percentage of the series maximum, which is at least 1
func scaleBars(bars []Bar) []Bar {
	peak := int64(1)
	for _, b := range bars {
		if b.Value > peak {
			peak = b.Value
		}
	}
	for i := range bars {
		bars[i].Percent = float64(bars[i].Value) / float64(peak) * 100
	}
	return bars
}

func scaleTimeline(series []models.TimeSeriesData) []Point {
	peak := int64(1)
	for _, p := range series {
		if p.Count > peak {
			peak = p.Count
		}
	}
	points := make([]Point, 0, len(series))
	for _, p := range series {
		points = append(points, Point{
			Date:   p.Date,
			Count:  p.Count,
			Height: float64(p.Count) / float64(peak) * TimelineHeight,
		})
	}
	return points
}
