package app

import "sync"

// ChatLimiter не даёт выполнять две команды одного чата одновременно.
type ChatLimiter struct {
	mu   sync.Mutex
	byID map[int64]*sync.Mutex
}

func NewChatLimiter() *ChatLimiter {
	return &ChatLimiter{byID: make(map[int64]*sync.Mutex)}
}

func (l *ChatLimiter) get(chatID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.byID[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.byID[chatID] = m
	}
	return m
}

// TryLock returns ok=false if a command of this chat is still running.
func (l *ChatLimiter) TryLock(chatID int64) (unlock func(), ok bool) {
	m := l.get(chatID)
	if !m.TryLock() {
		return nil, false
	}
	return m.Unlock, true
}
