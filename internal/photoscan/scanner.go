/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package photoscan reads the capture times of photos taken during a plan
// and reports their offsets, for checking a run against its script.
package photoscan

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// scanJob is a unit of work sent to decode workers.
type scanJob struct {
	fullPath string
	rootDir  string
}

// scanResult is the result of processing a single file.
type scanResult struct {
	photo Photo
	err   error
}

// Scanner walks directories and produces a report.
type Scanner struct {
	workers   int
	reference time.Time
	logger    zerolog.Logger
}

// NewScanner creates a scanner with the given number of decode workers.
// A zero reference measures offsets from the first photo by filename.
func NewScanner(workers int, reference time.Time, logger zerolog.Logger) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		workers:   workers,
		reference: reference,
		logger:    logger.With().Str("component", "photoscan").Logger(),
	}
}

// Scan reads every photo under dirs. Entries of dirs may be glob patterns.
// Files without capture metadata are counted as skipped.
func (s *Scanner) Scan(ctx context.Context, dirs []string) (*Report, error) {
	startTime := time.Now()

	report := &Report{
		ScannedAt: startTime.UTC(),
		RootDirs:  dirs,
	}

	jobs := make(chan scanJob, s.workers*2)
	results := make(chan scanResult, s.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				photo, err := s.processFile(job)
				results <- scanResult{photo: photo, err: err}
			}
		}()
	}

	var photos []Photo
	var skipped, errCount int
	var collectDone sync.WaitGroup
	collectDone.Add(1)
	go func() {
		defer collectDone.Done()
		for r := range results {
			switch {
			case errors.Is(r.err, ErrNoExif):
				s.logger.Debug().Err(r.err).Msg("skipping file")
				skipped++
			case r.err != nil:
				s.logger.Warn().Err(r.err).Msg("read photo")
				errCount++
			default:
				photos = append(photos, r.photo)
			}
		}
	}()

	var walkErr error
	walkErrs := 0
	for _, dir := range dirs {
		matches, err := filepath.Glob(dir)
		if err != nil {
			s.logger.Warn().Err(err).Str("pattern", dir).Msg("invalid glob")
			walkErrs++
			continue
		}
		if len(matches) == 0 {
			matches = []string{dir}
		}

		for _, root := range matches {
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					s.logger.Warn().Err(err).Str("path", path).Msg("walk")
					walkErrs++
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() || !isPhotoFile(d.Name()) {
					return nil
				}
				jobs <- scanJob{fullPath: path, rootDir: root}
				return nil
			})
			if err != nil {
				walkErr = err
				break
			}
		}
		if walkErr != nil {
			break
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	collectDone.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(photos, func(i, j int) bool {
		return photos[i].RelativePath < photos[j].RelativePath
	})

	report.Reference = s.reference
	if report.Reference.IsZero() && len(photos) > 0 {
		report.Reference = photos[0].TakenAt
	}
	for i := range photos {
		photos[i].Offset = photos[i].TakenAt.Sub(report.Reference).Seconds()
	}

	report.Photos = photos
	report.Stats = Stats{
		TotalFiles:      len(photos),
		Skipped:         skipped,
		Errors:          errCount + walkErrs,
		DurationSeconds: time.Since(startTime).Seconds(),
	}

	s.logger.Info().
		Int("photos", len(photos)).
		Int("skipped", skipped).
		Int("errors", report.Stats.Errors).
		Msg("scan complete")
	return report, nil
}

func (s *Scanner) processFile(job scanJob) (Photo, error) {
	photo, err := ReadPhoto(job.fullPath)
	if err != nil {
		return Photo{}, err
	}
	relPath, err := filepath.Rel(job.rootDir, job.fullPath)
	if err != nil || relPath == "." {
		relPath = filepath.Base(job.fullPath)
	}
	photo.RelativePath = relPath
	return photo, nil
}
