package analytics

import (
	"math"
	"math/rand"
	"time"
)

// RealtimeStat 实时概览，基于平台概览加抖动模拟瞬时波动
type RealtimeStat struct {
	OnlineUsers    int       `json:"online_users"`
	PostsPerMinute int       `json:"posts_per_minute"`
	Interactions   int       `json:"interactions"`
	HotCategory    string    `json:"hot_category"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Jitter 在 value 上叠加 ±ratio 比例的随机波动
func Jitter(value float64, ratio float64, rng *rand.Rand) float64 {
	delta := (rng.Float64()*2 - 1) * ratio
	return value * (1 + delta)
}

// BuildRealtime 从平台概览派生实时指标。
// 在线人数取活跃用户的小时均摊，发布频率取日发布量的分钟均摊，各加 ±15% 抖动。
func BuildRealtime(platform *PlatformStat, now time.Time, rng *rand.Rand) *RealtimeStat {
	online := Jitter(float64(platform.ActiveUsers)/24, 0.15, rng)
	posts := Jitter(float64(platform.DailyPosts)/1440, 0.15, rng)
	interactions := Jitter(float64(platform.TotalNotes)*0.08, 0.15, rng)

	return &RealtimeStat{
		OnlineUsers:    int(math.Max(online, 0)),
		PostsPerMinute: int(math.Max(math.Ceil(posts), 1)),
		Interactions:   int(math.Max(interactions, 0)),
		HotCategory:    platform.TopCategory,
		GeneratedAt:    now,
	}
}
