package bot

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// ChatLimiter rate limits replies per chat (user, group, or room) so one
// noisy chat cannot burn the reply quota. Buckets live in an LRU so total
// memory stays bounded no matter how many chats the bot is added to;
// evicting a stale chat just grants it a fresh bucket next time.
type ChatLimiter struct {
	buckets    *lru.Cache
	maxTokens  float64
	refillRate float64 // tokens per second
	mu         sync.Mutex
}

// NewChatLimiter allows messagesPerMinute sustained with bursts of
// burstSize, tracking at most maxChats chats at once.
func NewChatLimiter(messagesPerMinute, burstSize, maxChats int) (*ChatLimiter, error) {
	cache, err := lru.New(maxChats)
	if err != nil {
		return nil, err
	}
	return &ChatLimiter{
		buckets:    cache,
		maxTokens:  float64(burstSize),
		refillRate: float64(messagesPerMinute) / 60.0,
	}, nil
}

// Allow reports whether the chat may receive another reply now, consuming
// one token if so.
func (l *ChatLimiter) Allow(chatID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var bucket *tokenBucket
	if v, ok := l.buckets.Get(chatID); ok {
		bucket = v.(*tokenBucket)
	} else {
		bucket = &tokenBucket{tokens: l.maxTokens, lastRefill: time.Now()}
		l.buckets.Add(chatID, bucket)
	}

	now := time.Now()
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens = min(l.maxTokens, bucket.tokens+elapsed*l.refillRate)
	bucket.lastRefill = now

	if bucket.tokens >= 1.0 {
		bucket.tokens -= 1.0
		return true
	}
	return false
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}
