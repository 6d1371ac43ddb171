// Package seqguard отбрасывает устаревшие ответы: результат применяется,
// только если он относится к последнему запущенному запросу.
package seqguard

import "sync"

// Token номер запроса
type Token uint64

// Guard счётчик запросов одной логической операции
type Guard struct {
	mu      sync.Mutex
	current Token
}

// Next начинает новый запрос. Все ранее выданные токены становятся устаревшими.
func (g *Guard) Next() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

// IsCurrent true, если t выдан последним вызовом Next
func (g *Guard) IsCurrent(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t == g.current
}

// Apply вызывает fn под блокировкой, если t ещё актуален.
// Возвращает false, если результат устарел и fn не вызывалась.
func (g *Guard) Apply(t Token, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t != g.current {
		return false
	}
	fn()
	return true
}
