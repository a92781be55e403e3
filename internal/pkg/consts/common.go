package consts

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	DefaultNoteLimit = 1000
	MaxSampleSize    = 2000
)
