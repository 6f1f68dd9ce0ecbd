package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/repositories"
)

const (
	pendingPollInterval = 10 * time.Second
	pendingBatchSize    = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(comparisonID uuid.UUID)
}

// WorkerOptions configures the comparison worker pool and the upload janitor.
type WorkerOptions struct {
	Concurrency     int
	UploadTTL       time.Duration
	CleanupInterval time.Duration
}

type worker struct {
	comparisonRepo repositories.ComparisonRepository
	docRepo        repositories.DocumentRepository
	comparisons    ComparisonService
	blobs          BlobStore
	opts           WorkerOptions
	jobQueue       chan uuid.UUID
	wg             sync.WaitGroup
	stopChan       chan struct{}
	stopOnce       sync.Once
}

func NewWorker(
	comparisonRepo repositories.ComparisonRepository,
	docRepo repositories.DocumentRepository,
	comparisons ComparisonService,
	blobs BlobStore,
	opts WorkerOptions,
) Worker {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &worker{
		comparisonRepo: comparisonRepo,
		docRepo:        docRepo,
		comparisons:    comparisons,
		blobs:          blobs,
		opts:           opts,
		jobQueue:       make(chan uuid.UUID, 100),
		stopChan:       make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.opts.Concurrency)

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs()

	if w.opts.UploadTTL > 0 && w.opts.CleanupInterval > 0 {
		w.wg.Add(1)
		go w.cleanupUploads(ctx)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(comparisonID uuid.UUID) {
	select {
	case w.jobQueue <- comparisonID:
		log.Printf("📥 Job %s enqueued\n", comparisonID)
	case <-w.stopChan:
		log.Printf("⚠️ Worker stopped, cannot enqueue job %s\n", comparisonID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case comparisonID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s\n", workerID, comparisonID)
			if err := w.comparisons.ProcessComparison(ctx, comparisonID); err != nil {
				log.Printf("❌ Worker #%d failed to process job %s: %v\n", workerID, comparisonID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, comparisonID)
			}
		}
	}
}

func (w *worker) pollPendingJobs() {
	defer w.wg.Done()
	ticker := time.NewTicker(pendingPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.comparisonRepo.FindPendingJobs(pendingBatchSize)
			if err != nil {
				log.Printf("⚠️ Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending jobs\n", len(pendingJobs))
			}
			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}

func (w *worker) cleanupUploads(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🧹 Upload janitor stopped")
			return
		case <-ticker.C:
			w.sweepUploads(ctx)
		}
	}
}

// sweepUploads removes uploads older than the TTL and detaches them from
// their documents.
func (w *worker) sweepUploads(ctx context.Context) {
	removed, err := w.blobs.CleanupOlderThan(ctx, w.opts.UploadTTL)
	if err != nil {
		log.Printf("⚠️ Upload cleanup failed: %v\n", err)
	}
	if len(removed) == 0 {
		return
	}

	if err := w.docRepo.ClearBlobKeys(removed); err != nil {
		log.Printf("⚠️ Failed to detach %d expired uploads: %v\n", len(removed), err)
		return
	}
	log.Printf("🧹 Removed %d uploads older than %s\n", len(removed), w.opts.UploadTTL)
}
