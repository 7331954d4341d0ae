package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumatch/resume-matcher/internal/repositories"
)

// Worker drains queued match jobs through a fixed pool of goroutines.
// Independent match requests run concurrently; the pipeline itself has no
// shared mutable state, so no locking is needed between jobs.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(matchID uuid.UUID)
}

type worker struct {
	matchRepo    repositories.MatchRepository
	matchService MatchService
	jobQueue     chan uuid.UUID
	concurrency  int
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	matchRepo repositories.MatchRepository,
	matchService MatchService,
	concurrency int,
) Worker {
	return &worker{
		matchRepo:    matchRepo,
		matchService: matchService,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Requeue jobs that were still pending at last shutdown.
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(matchID uuid.UUID) {
	select {
	case w.jobQueue <- matchID:
		log.Printf("📥 Match job %s enqueued\n", matchID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", matchID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case matchID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing match %s\n", workerID, matchID)
			if err := w.matchService.ProcessMatch(ctx, matchID); err != nil {
				log.Printf("❌ Worker #%d failed to process match %s: %v\n", workerID, matchID, err)
			} else {
				log.Printf("✅ Worker #%d completed match %s\n", workerID, matchID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.matchRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending match jobs\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
