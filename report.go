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
	"time"

	"github.com/rmachado/concilia/model"
)

// AssembleReport freezes the output of the matcher, the analyzer and
// the aggregator into one immutable report. Reports are superseded, not
// mutated: reprocessing a batch builds a brand-new report object with
// the same import batch id and a fresh report id.
func AssembleReport(
	batch model.ImportBatch,
	outcomes []model.MatchOutcome,
	summaries []model.CategorySummary,
	malformed []model.MalformedNoteError,
	duplicates []model.DuplicateKeyError,
	suggestionMaxDistance int,
) *model.ReconciliationReport {
	report := &model.ReconciliationReport{
		ReportID:            model.GenerateUUIDWithSuffix("recon"),
		ImportBatchID:       batch.ImportBatchID,
		ReferenceDate:       batch.ReferenceDate,
		CategorySummaries:   summaries,
		DivergentAssociates: []model.DivergentAssociate{},
		FileOnlyNotes:       []model.FileNote{},
		BankOnlyNotes:       []model.BankNote{},
		MalformedNotes:      malformed,
		DuplicateKeys:       duplicates,
		GeneratedAt:         time.Now(),
	}
	if report.MalformedNotes == nil {
		report.MalformedNotes = []model.MalformedNoteError{}
	}
	if report.DuplicateKeys == nil {
		report.DuplicateKeys = []model.DuplicateKeyError{}
	}

	for _, outcome := range outcomes {
		switch outcome.Type {
		case model.DivergentMatch:
			report.DivergentAssociates = append(report.DivergentAssociates, model.DivergentAssociate{
				File:       *outcome.File,
				Bank:       *outcome.Bank,
				Divergence: AnalyzeDivergence(*outcome.File, *outcome.Bank),
			})
		case model.FileOnly:
			report.FileOnlyNotes = append(report.FileOnlyNotes, *outcome.File)
		case model.BankOnly:
			report.BankOnlyNotes = append(report.BankOnlyNotes, *outcome.Bank)
		}
	}

	report.Suggestions = SuggestCounterparts(report.FileOnlyNotes, report.BankOnlyNotes, suggestionMaxDistance)

	return report
}
