/*
Copyright 2025 Concilia Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package concilia

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rmachado/concilia/config"
	"github.com/rmachado/concilia/internal/apierror"
	"github.com/rmachado/concilia/internal/cache"
	redlock "github.com/rmachado/concilia/internal/lock"
	"github.com/rmachado/concilia/internal/notification"
	"github.com/rmachado/concilia/model"
)

// Concilia is the reconciliation engine. One instance serves many
// batches; each Reconcile call is an independent single-threaded pass
// whose only shared state is the finished, immutable report it files
// away for later queries.
type Concilia struct {
	cache   cache.Cache
	redis   redis.UniversalClient
	reports sync.Map // report id -> *model.ReconciliationReport
}

// NewConcilia builds an engine. Both arguments may be nil when Redis is
// not configured; reports are then held in process only and batch runs
// are not serialized across instances.
func NewConcilia(cacheInstance cache.Cache, redisClient redis.UniversalClient) *Concilia {
	return &Concilia{cache: cacheInstance, redis: redisClient}
}

const (
	batchLockTimeout = 5 * time.Minute
	batchLockWait    = 30 * time.Second
)

// Reconcile runs one full reconciliation for an import batch: the raw
// extract records against the raw billing-store records.
//
// Malformed notes and duplicated keys do not abort the run; the
// offending notes are excluded from matching and surfaced inside the
// report so an operator can fix the source data. Only integration
// errors (non-finite monetary values, missing configuration) return as
// an error.
func (c *Concilia) Reconcile(ctx context.Context, batch model.ImportBatch, fileRaw, bankRaw []model.RawNote) (*model.ReconciliationReport, error) {
	cnf, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	tolerance := cnf.Reconciliation.ToleranceCents

	// Two operators reprocessing the same batch would race on the
	// cache; serialize per batch when Redis is available.
	if c.redis != nil {
		locker := redlock.NewBatchLocker(c.redis, batch.ImportBatchID)
		if err := locker.WaitLock(ctx, batchLockTimeout, batchLockWait); err != nil {
			return nil, errors.Wrap(err, "acquiring batch lock")
		}
		defer func() {
			if err := locker.Unlock(ctx); err != nil {
				notification.NotifyError(err)
			}
		}()
	}

	started := time.Now()
	logrus.WithFields(logrus.Fields{
		"import_batch_id": batch.ImportBatchID,
		"file_notes":      len(fileRaw),
		"bank_notes":      len(bankRaw),
	}).Info("starting reconciliation")

	fileNotes, fileWarnings, err := NormalizeFileNotes(fileRaw, tolerance)
	if err != nil {
		return nil, errors.Wrap(err, "normalizing file notes")
	}
	bankNotes, bankWarnings, err := NormalizeBankNotes(bankRaw, tolerance)
	if err != nil {
		return nil, errors.Wrap(err, "normalizing bank notes")
	}
	malformed := append(fileWarnings, bankWarnings...)

	outcomes, duplicates := MatchNotes(fileNotes, bankNotes, tolerance)

	// Notes under a duplicated key cannot be paired, so they are kept
	// out of the summary totals as well.
	excluded := keysExcludedFrom(duplicates)
	summaries := SummarizeByCategory(
		filterFileNotes(fileNotes, excluded),
		filterBankNotes(bankNotes, excluded),
	)

	report := AssembleReport(batch, outcomes, summaries, malformed, duplicates,
		cnf.Reconciliation.SuggestionMaxDistance)

	c.reports.Store(report.ReportID, report)
	if c.cache != nil {
		ttl := time.Duration(cnf.Reconciliation.ReportCacheTTLMinutes) * time.Minute
		if err := c.cache.Set(ctx, reportCacheKey(report.ReportID), report, ttl); err != nil {
			notification.NotifyError(err)
		}
	}

	if len(malformed) > 0 || len(duplicates) > 0 {
		notification.NotifyDataQuality(batch.ImportBatchID, len(malformed), len(duplicates))
	}

	logrus.WithFields(logrus.Fields{
		"import_batch_id": batch.ImportBatchID,
		"report_id":       report.ReportID,
		"divergent":       len(report.DivergentAssociates),
		"file_only":       len(report.FileOnlyNotes),
		"bank_only":       len(report.BankOnlyNotes),
		"warnings":        len(malformed) + len(duplicates),
		"took":            time.Since(started),
	}).Info("reconciliation completed")

	return report, nil
}

// GetReconciliation loads a finished report by its id, first from the
// in-process registry, then from the cache.
func (c *Concilia) GetReconciliation(ctx context.Context, reportID string) (*model.ReconciliationReport, error) {
	if stored, ok := c.reports.Load(reportID); ok {
		return stored.(*model.ReconciliationReport), nil
	}

	if c.cache != nil {
		var report model.ReconciliationReport
		if err := c.cache.Get(ctx, reportCacheKey(reportID), &report); err != nil {
			return nil, err
		}
		if report.ReportID == reportID {
			return &report, nil
		}
	}

	return nil, apierror.NewAPIError(apierror.ErrNotFound, "reconciliation report not found: "+reportID, nil)
}

func reportCacheKey(reportID string) string {
	return "concilia:report:" + reportID
}

func filterFileNotes(notes []model.FileNote, excluded map[model.MatchKey]bool) []model.FileNote {
	if len(excluded) == 0 {
		return notes
	}
	out := make([]model.FileNote, 0, len(notes))
	for _, n := range notes {
		if !excluded[n.Key()] {
			out = append(out, n)
		}
	}
	return out
}

func filterBankNotes(notes []model.BankNote, excluded map[model.MatchKey]bool) []model.BankNote {
	if len(excluded) == 0 {
		return notes
	}
	out := make([]model.BankNote, 0, len(notes))
	for _, n := range notes {
		if !excluded[n.Key()] {
			out = append(out, n)
		}
	}
	return out
}
