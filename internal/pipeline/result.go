package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docfmt/internal/analyze"
)

// Version is one rendering of a document.
type Version struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// DocumentContent holds the converter output and the rewritten output.
type DocumentContent struct {
	Original  Version `json:"original"`
	Formatted Version `json:"formatted"`
	FileName  string  `json:"fileName"`
}

// Result is the outcome of one successful Process call.
type Result struct {
	ID          string          `json:"id"`
	Content     DocumentContent `json:"content"`
	Analysis    analyze.Result  `json:"analysis"`
	Messages    []string        `json:"messages"`
	ContentHash string          `json:"contentHash"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ResultStore is a thread-safe in-memory result registry with TTL eviction.
type ResultStore struct {
	mu      sync.Mutex
	results map[string]*Result
	ttl     time.Duration
}

func NewResultStore(ttl time.Duration) *ResultStore {
	return &ResultStore{
		results: make(map[string]*Result),
		ttl:     ttl,
	}
}

func (s *ResultStore) Put(r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.ID] = r
}

func (s *ResultStore) Get(id string) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[id]
}

// Delete removes a result and reports whether it existed.
func (s *ResultStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.results[id]
	delete(s.results, id)
	return ok
}

func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Cleanup removes expired results.
func (s *ResultStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	n := 0
	for id, r := range s.results {
		if now.Sub(r.CreatedAt) > s.ttl {
			delete(s.results, id)
			n++
		}
	}
	return n
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
