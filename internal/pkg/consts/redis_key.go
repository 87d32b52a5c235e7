package consts

const (
	FeedGlobalKey     = "feed:global:"
	MediaPendingKey   = "media:pending"
	TokenBlacklistKey = "token:blacklist:"
	SearchReindexLock = "lock:search:reindex"
	MediaCleanupLock  = "lock:media:cleanup"
	SearchReindexMark = "search:reindex:last"
)
