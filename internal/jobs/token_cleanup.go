package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dlwnsgus777/my-mandalateu/internal/service"
)

// TokenCleanupProcessor periodically deletes expired refresh tokens
// so the token table does not grow without bound.
type TokenCleanupProcessor struct {
	tokenService *service.TokenService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewTokenCleanupProcessor creates a new token cleanup job
func NewTokenCleanupProcessor(tokenService *service.TokenService, interval time.Duration) *TokenCleanupProcessor {
	if interval == 0 {
		interval = 1 * time.Hour // Default check every hour
	}
	return &TokenCleanupProcessor{
		tokenService: tokenService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the token cleanup job
func (p *TokenCleanupProcessor) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	log.Printf("Token cleanup processor started (interval: %v)", p.interval)
}

// Stop gracefully stops the token cleanup job
func (p *TokenCleanupProcessor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	log.Println("Token cleanup processor stopped")
}

// run is the main loop
func (p *TokenCleanupProcessor) run() {
	defer p.wg.Done()

	// Run immediately on start (but with a short delay to let services initialize)
	select {
	case <-time.After(5 * time.Second):
		p.cleanupExpiredTokens()
	case <-p.stopCh:
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.cleanupExpiredTokens()
		case <-p.stopCh:
			return
		}
	}
}

// cleanupExpiredTokens deletes refresh tokens past their expiry
func (p *TokenCleanupProcessor) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := p.tokenService.CleanupExpiredTokens(ctx); err != nil {
		log.Printf("Error cleaning up expired tokens: %v", err)
	}
}

// RunOnce runs the cleanup once (for testing or manual trigger)
func (p *TokenCleanupProcessor) RunOnce(ctx context.Context) error {
	return p.tokenService.CleanupExpiredTokens(ctx)
}

// IsRunning returns whether the processor is running
func (p *TokenCleanupProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
