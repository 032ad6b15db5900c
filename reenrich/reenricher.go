// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reenrich

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
	"github.com/panjf2000/ants/v2"
)

// Config holds configuration for a re-enrichment run.
type Config struct {
	// BatchSize is the number of notes handed to each worker task
	BatchSize int

	// ReportInterval is how often to report progress (number of notes)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts per provider call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Concurrency is the worker pool size. Defaults to half the CPUs.
	Concurrency int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	concurrency := runtime.NumCPU() / 2
	if concurrency < 1 {
		concurrency = 1
	}
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		Concurrency:    concurrency,
	}
}

// Reenricher re-runs AI annotation over an owner's degraded notes —
// those that completed ingestion with empty summary and tags because a
// provider was down at the time.
type Reenricher struct {
	repo      storage.NoteRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *NoteIterator
}

// NewReenricher creates a new re-enricher.
// progress: where to write progress output (typically os.Stderr)
func NewReenricher(repo storage.NoteRepository, summarizer ai.Summarizer, config *Config, progress io.Writer) *Reenricher {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}

	return &Reenricher{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(repo, summarizer, config.MaxRetries, config.RetryDelay),
		iterator:  NewNoteIterator(repo, config.BatchSize),
	}
}

// Run re-annotates the owner's degraded notes. Batches are dispatched
// to a worker pool; the first batch failure aborts the run after
// in-flight batches drain. Returns how many notes were re-annotated.
func (r *Reenricher) Run(ctx context.Context, owner string) (int, error) {
	all, err := r.repo.AllByOwner(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to query notes: %w", err)
	}

	degradedTotal := 0
	for _, note := range all {
		if Degraded(note) {
			degradedTotal++
		}
	}
	if degradedTotal == 0 {
		fmt.Fprintf(r.progress, "No degraded notes found (%d notes total)\n", len(all))
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Re-enriching %d of %d notes (batch size: %d, workers: %d)\n",
		degradedTotal, len(all), r.config.BatchSize, r.config.Concurrency)

	pool, err := ants.NewPool(r.config.Concurrency)
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	tracker := NewProgressTracker(r.progress, degradedTotal, r.config.ReportInterval)
	tracker.Start()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		updated  int
		firstErr error
	)

	err = r.iterator.ForEach(ctx, owner, func(batch []*core.Note) error {
		mu.Lock()
		aborted := firstErr != nil
		mu.Unlock()
		if aborted {
			return firstErr
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			n, procErr := r.processor.Process(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			updated += n
			if procErr != nil && firstErr == nil {
				firstErr = procErr
			}
			tracker.Increment(n)
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
		return nil
	})

	wg.Wait()

	if err == nil {
		mu.Lock()
		err = firstErr
		mu.Unlock()
	}
	if err != nil {
		return updated, err
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Re-enrichment complete. Updated %d notes in %v\n",
		updated, elapsed.Round(time.Second))

	return updated, nil
}
