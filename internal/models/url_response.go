package models

// CreateURLResponse represents the response after creating a short URL
type CreateURLResponse struct {
	ID          string `json:"id"`
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// ShortURL is one of the caller's links as listed by GET /urls
type ShortURL struct {
	ID                 string  `json:"id"`
	OriginalURL        string  `json:"original_url"`
	ShortCode          string  `json:"short_code"`
	ShortURL           string  `json:"short_url"`
	Clicks             int64   `json:"clicks"`
	CreatedAt          string  `json:"created_at"`
	Expiration         *string `json:"expiration,omitempty"`
	PreviewTitle       *string `json:"preview_title,omitempty"`
	PreviewDescription *string `json:"preview_description,omitempty"`
	PreviewImage       *string `json:"preview_image,omitempty"`
}

// URLStats is the per-link analytics snapshot
type URLStats struct {
	ShortCode       string           `json:"short_code"`
	OriginalURL     string           `json:"original_url"`
	TotalClicks     int64            `json:"total_clicks"`
	ClicksToday     int64            `json:"clicks_today"`
	ClicksThisWeek  int64            `json:"clicks_this_week"`
	TopReferrers    []ReferrerCount  `json:"top_referrers"`
	ClicksByCountry []CountryCount   `json:"clicks_by_country"`
	ClicksByDevice  []DeviceCount    `json:"clicks_by_device"`
	ClicksOverTime  []TimeSeriesData `json:"clicks_over_time"`
}

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type DeviceCount struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

type TimeSeriesData struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// URLPreview is the link metadata shown while shortening
type URLPreview struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	URL         string  `json:"url"`
}
