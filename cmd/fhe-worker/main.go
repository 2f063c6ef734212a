// Command fhe-worker runs ciphertext-generation workers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/luxfi/edgefhe"
	"github.com/luxfi/edgefhe/internal/queue"
	"github.com/luxfi/edgefhe/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		numWorkers  = flag.Int("workers", 4, "number of worker goroutines")
		redisAddr   = flag.String("redis", "localhost:6379", "Redis address")
		redisDB     = flag.Int("redis-db", 0, "Redis database number")
		queueName   = flag.String("queue", "default", "queue name")
		storagePath = flag.String("storage", "/tmp/edgefhe-storage", "ciphertext storage path")
		metricsAddr = flag.String("metrics", ":9090", "metrics server address")
		paramSet    = flag.String("params", "standard", "parameter preset: compact, standard, deep")
	)
	flag.Parse()

	log.Printf("edgefhe worker starting...")
	log.Printf("  Workers: %d", *numWorkers)
	log.Printf("  Redis: %s", *redisAddr)
	log.Printf("  Storage: %s", *storagePath)
	log.Printf("  Metrics: %s", *metricsAddr)
	log.Printf("  Params: %s", *paramSet)

	// Queue.
	q, err := queue.NewRedisQueue(queue.RedisConfig{
		Addr: *redisAddr,
		DB:   *redisDB,
	}, *queueName)
	if err != nil {
		return fmt.Errorf("create queue: %w", err)
	}
	defer q.Close()

	// Storage.
	store, err := storage.NewFileStorage(*storagePath)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}

	prm, err := paramsByName(*paramSet)
	if err != nil {
		return err
	}

	kgen := fhe.NewKeyGenerator(prm)
	sk, pk := kgen.GenKeyPair()

	// Worker pool.
	pool := &WorkerPool{
		numWorkers: *numWorkers,
		queue:      q,
		storage:    store,
		pk:         pk,
		sk:         sk,
	}

	// Context with cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers.
	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("start workers: %w", err)
	}

	// Metrics server.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "# HELP fhe_operations_total Total ciphertext operations\n")
		fmt.Fprintf(w, "# TYPE fhe_operations_total counter\n")
		fmt.Fprintf(w, "fhe_operations_total{status=\"success\"} %d\n", pool.successCount.Load())
		fmt.Fprintf(w, "fhe_operations_total{status=\"failure\"} %d\n", pool.failureCount.Load())
		fmt.Fprintf(w, "# HELP fhe_sigma_density Mean bit-vector density of the most recently produced ciphertext\n")
		fmt.Fprintf(w, "# TYPE fhe_sigma_density gauge\n")
		fmt.Fprintf(w, "fhe_sigma_density %g\n", pool.lastSigmaDensity())
	})

	server := &http.Server{
		Addr:    *metricsAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("Metrics server starting on %s", *metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Printf("Received signal: %s", sig.String())

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Metrics server shutdown error: %v", err)
	}

	if err := pool.Stop(); err != nil {
		log.Printf("Worker pool shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func paramsByName(name string) (*fhe.Prm, error) {
	switch name {
	case "compact":
		return fhe.NewParams(fhe.Compact)
	case "standard":
		return fhe.NewParams(fhe.Standard)
	case "deep":
		return fhe.NewParams(fhe.Deep)
	default:
		return nil, fmt.Errorf("unknown parameter preset %q", name)
	}
}

// WorkerPool manages a pool of goroutines that drain the job queue and
// produce or combine ciphertexts.
type WorkerPool struct {
	numWorkers   int
	queue        queue.Queue
	storage      storage.Storage
	pk           *fhe.PublicKey
	sk           *fhe.SecretKey
	wg           sync.WaitGroup
	cancel       context.CancelFunc
	running      atomic.Bool
	successCount atomic.Int64
	failureCount atomic.Int64
	sigmaBits    atomic.Uint64 // float64 bits of the last observed sigma_density
}

func (p *WorkerPool) lastSigmaDensity() float64 {
	return math.Float64frombits(p.sigmaBits.Load())
}

// Start starts the worker pool.
func (p *WorkerPool) Start(ctx context.Context) error {
	if p.running.Load() {
		return errors.New("pool already running")
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.running.Store(true)

	log.Printf("Starting %d workers", p.numWorkers)

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	return nil
}

// Stop gracefully stops the worker pool.
func (p *WorkerPool) Stop() error {
	if !p.running.Load() {
		return nil
	}

	log.Println("Stopping worker pool...")
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Worker pool stopped")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout exceeded")
		return errors.New("shutdown timeout")
	}

	p.running.Store(false)
	return nil
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	log.Printf("Worker %d started", id)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d stopping", id)
			return
		default:
		}

		job, err := p.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("Worker %d: failed to pop job: %v", id, err)
			time.Sleep(time.Second)
			continue
		}

		p.processJob(ctx, id, job)
	}
}

func (p *WorkerPool) fail(ctx context.Context, job *queue.Job, workerID int, step string, err error) {
	job.Status = queue.StatusFailed
	job.Error = fmt.Sprintf("%s: %v", step, err)
	if uerr := p.queue.Update(ctx, job); uerr != nil {
		log.Printf("Worker %d: failed to update job status: %v", workerID, uerr)
	}
	p.failureCount.Add(1)
}

func (p *WorkerPool) processJob(ctx context.Context, workerID int, job *queue.Job) {
	log.Printf("Worker %d: processing job %s (op=%d)", workerID, job.ID, job.Operation)

	job.Status = queue.StatusProcessing
	if err := p.queue.Update(ctx, job); err != nil {
		log.Printf("Worker %d: failed to update job status: %v", workerID, err)
	}

	var result *fhe.Cipher

	switch job.Operation {
	case queue.OpEncryptValue:
		result = fhe.EncValueDepth(p.pk, p.sk, job.Value, job.DepthHint)

	case queue.OpEncryptZero:
		result = fhe.EncZeroDepth(p.pk, p.sk, job.DepthHint)

	case queue.OpCombine:
		lhs, err := storage.LoadCipher(ctx, p.storage, storage.Handle(job.LHSHandle))
		if err != nil {
			p.fail(ctx, job, workerID, "load lhs", err)
			return
		}
		rhs, err := storage.LoadCipher(ctx, p.storage, storage.Handle(job.RHSHandle))
		if err != nil {
			p.fail(ctx, job, workerID, "load rhs", err)
			return
		}

		result = fhe.CombineCiphers(p.pk, lhs, rhs)

	default:
		p.fail(ctx, job, workerID, "dispatch", fmt.Errorf("unsupported operation: %d", job.Operation))
		return
	}

	p.sigmaBits.Store(math.Float64bits(fhe.SigmaDensity(p.pk, result)))

	handle, err := storage.StoreCipher(ctx, p.storage, result)
	if err != nil {
		p.fail(ctx, job, workerID, "store result", err)
		return
	}

	job.Status = queue.StatusCompleted
	job.ResultHandle = string(handle)
	if err := p.queue.Update(ctx, job); err != nil {
		log.Printf("Worker %d: failed to update job result: %v", workerID, err)
	}

	p.successCount.Add(1)
	log.Printf("Worker %d: job %s completed", workerID, job.ID)
}
