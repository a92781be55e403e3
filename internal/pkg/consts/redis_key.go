package consts

const (
	UserInsightsKey  = "insight:users"
	PlatformStatsKey = "stats:platform"
)

const (
	InsightRefreshLock = "lock:insight:refresh"
)
