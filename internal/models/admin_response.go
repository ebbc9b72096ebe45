package models

// AdminStats is the platform-wide summary shown on the admin page
type AdminStats struct {
	TotalURLs      int64 `json:"total_urls"`
	TotalClicks    int64 `json:"total_clicks"`
	TotalUsers     int64 `json:"total_users"`
	URLsToday      int64 `json:"urls_today"`
	ClicksToday    int64 `json:"clicks_today"`
	URLsThisWeek   int64 `json:"urls_this_week"`
	ClicksThisWeek int64 `json:"clicks_this_week"`
}

// TopURL is one row of the admin top-URLs ranking
type TopURL struct {
	ID          string `json:"id"`
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
	Clicks      int64  `json:"clicks"`
	UserEmail   string `json:"user_email"`
}

// TopURLsResponse wraps the ranking with its size
type TopURLsResponse struct {
	URLs  []TopURL `json:"urls"`
	Count int      `json:"count"`
}
