package models

// ActivityLog is one appended unit of role output: a finished video edit
// batch for editors, a shoot batch for shooters. Entries are never merged
// or deduplicated; same-day entries accumulate at aggregation time.
type ActivityLog struct {
	ID        string `json:"id"`
	DateKey   string `json:"date_key"`
	Client    string `json:"client"`
	VideoType string `json:"video_type"`
	Quantity  int    `json:"quantity"`
}
