package domain

import "time"

// MaxLogEntries bounds the activity log; older entries are dropped.
const MaxLogEntries = 100

// LogAction is the closed set of audited admin actions.
type LogAction string

const (
	ActionAddMovie    LogAction = "ADD_MOVIE"
	ActionUpdateMovie LogAction = "UPDATE_MOVIE"
	ActionDeleteMovie LogAction = "DELETE_MOVIE"
	ActionUpdateAds   LogAction = "UPDATE_ADS"
	ActionToggleAd    LogAction = "TOGGLE_AD"
	ActionClearLogs   LogAction = "CLEAR_LOGS"
)

// LogType is the severity tag of an entry.
type LogType string

const (
	LogSuccess LogType = "success"
	LogInfo    LogType = "info"
	LogWarning LogType = "warning"
	LogDanger  LogType = "danger"
)

// ActivityLogEntry is an immutable audit record.
type ActivityLogEntry struct {
	ID        string    `json:"id" validate:"required"`
	Action    LogAction `json:"action" validate:"oneof=ADD_MOVIE UPDATE_MOVIE DELETE_MOVIE UPDATE_ADS TOGGLE_AD CLEAR_LOGS"`
	Details   string    `json:"details"`
	Timestamp int64     `json:"timestamp"` // unix millis
	Type      LogType   `json:"type" validate:"oneof=success info warning danger"`
}

// Time returns Timestamp as a time.Time.
func (e *ActivityLogEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Analytics is the running-totals record kept next to the catalog.
// DailyViews is cumulative: nothing resets it at a day boundary.
type Analytics struct {
	TotalMovies    int `json:"totalMovies" validate:"gte=0"`
	TotalDownloads int `json:"totalDownloads" validate:"gte=0"`
	DailyViews     int `json:"dailyViews" validate:"gte=0"`
}
