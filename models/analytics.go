package models

// PostAnalytics is the per-post analytics series rendered by the
// post dashboard chart.
type PostAnalytics struct {
	PostID   string           `json:"postId"`
	Views    int              `json:"views"`
	Likes    int              `json:"likes"`
	Comments int              `json:"comments"`
	Shares   int              `json:"shares"`
	Daily    []AnalyticsPoint `json:"daily,omitempty"`
}

type AnalyticsPoint struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
	Likes int    `json:"likes"`
}

// AnalyticsOverview aggregates analytics across all of the current
// user's posts.
type AnalyticsOverview struct {
	TotalViews int             `json:"totalViews"`
	TotalLikes int             `json:"totalLikes"`
	Posts      []PostAnalytics `json:"posts"`
}
