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
package model

import (
	"fmt"
	"strings"

	"github.com/rmachado/concilia/internal/apierror"
)

// Query methods over a final report. All of them are read-only and safe
// for concurrent callers; the report never recomputes anything.

// GetCategorySummaries returns the full summary table. It is typically a
// few dozen rows and is not paged.
func (r *ReconciliationReport) GetCategorySummaries() []CategorySummary {
	out := make([]CategorySummary, len(r.CategorySummaries))
	copy(out, r.CategorySummaries)
	return out
}

// GetDivergentAssociates returns one page of divergence entries. filter,
// when non-empty, matches case-insensitively against note number,
// associate code or associate name substrings.
func (r *ReconciliationReport) GetDivergentAssociates(page, pageSize int, filter string) ([]DivergentAssociate, error) {
	if err := validatePageRequest(page, pageSize); err != nil {
		return nil, err
	}
	entries := r.DivergentAssociates
	if filter != "" {
		entries = make([]DivergentAssociate, 0, len(r.DivergentAssociates))
		for _, entry := range r.DivergentAssociates {
			if noteMatchesFilter(entry.File.Note, filter) || noteMatchesFilter(entry.Bank.Note, filter) {
				entries = append(entries, entry)
			}
		}
	}
	return pageOf(entries, page, pageSize), nil
}

// GetFileOnlyNotes returns one page of notes present only in the
// extract.
func (r *ReconciliationReport) GetFileOnlyNotes(page, pageSize int) ([]FileNote, error) {
	if err := validatePageRequest(page, pageSize); err != nil {
		return nil, err
	}
	return pageOf(r.FileOnlyNotes, page, pageSize), nil
}

// GetBankOnlyNotes returns one page of notes present only in the
// persisted billing records.
func (r *ReconciliationReport) GetBankOnlyNotes(page, pageSize int) ([]BankNote, error) {
	if err := validatePageRequest(page, pageSize); err != nil {
		return nil, err
	}
	return pageOf(r.BankOnlyNotes, page, pageSize), nil
}

// IsEmpty reports a clean batch: no divergences and no exclusive notes
// on either side. Data-quality warnings do not make a batch dirty; they
// are surfaced separately.
func (r *ReconciliationReport) IsEmpty() bool {
	return len(r.DivergentAssociates) == 0 &&
		len(r.FileOnlyNotes) == 0 &&
		len(r.BankOnlyNotes) == 0
}

func validatePageRequest(page, pageSize int) error {
	if page < 0 || pageSize <= 0 {
		return apierror.NewAPIError(apierror.ErrInvalidPageRequest,
			fmt.Sprintf("invalid page request: page=%d pageSize=%d", page, pageSize), nil)
	}
	return nil
}

func pageOf[T any](entries []T, page, pageSize int) []T {
	start := page * pageSize
	if start >= len(entries) {
		return []T{}
	}
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}
	out := make([]T, end-start)
	copy(out, entries[start:end])
	return out
}

func noteMatchesFilter(n Note, filter string) bool {
	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(n.NoteNumber), needle) ||
		strings.Contains(strings.ToLower(n.AssociateCode), needle) ||
		strings.Contains(strings.ToLower(n.AssociateName), needle)
}
