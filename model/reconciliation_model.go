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
	"time"
)

// OutcomeType classifies one MatchKey seen on either side.
type OutcomeType string

const (
	ExactMatch     OutcomeType = "EXACT_MATCH"
	DivergentMatch OutcomeType = "DIVERGENT_MATCH"
	FileOnly       OutcomeType = "FILE_ONLY"
	BankOnly       OutcomeType = "BANK_ONLY"
)

// MatchOutcome is the classification of one distinct MatchKey.
// ExactMatch and DivergentMatch carry both notes; FileOnly and BankOnly
// carry one.
type MatchOutcome struct {
	Type OutcomeType `json:"type"`
	Key  MatchKey    `json:"key"`
	File *FileNote   `json:"file,omitempty"`
	Bank *BankNote   `json:"bank,omitempty"`
}

// ItemDelta is a line item present on both sides of a divergent pair
// whose quantity or unit value differs. It is reported once, never
// duplicated as a missing plus an extra item.
type ItemDelta struct {
	ProductCode    string `json:"product_code"`
	Description    string `json:"description"`
	FileQuantity   int64  `json:"file_quantity"`
	BankQuantity   int64  `json:"bank_quantity"`
	QuantityDelta  int64  `json:"quantity_delta"`
	FileUnitValue  Money  `json:"file_unit_value"`
	BankUnitValue  Money  `json:"bank_unit_value"`
	UnitValueDelta Money  `json:"unit_value_delta"`
}

// Divergence expands a DivergentMatch into field-level and item-level
// differences. ValueDelta is always file minus bank.
type Divergence struct {
	MissingItems []NoteItem  `json:"missing_items"`
	ExtraItems   []NoteItem  `json:"extra_items"`
	ItemDeltas   []ItemDelta `json:"item_deltas"`
	FileValue    Money       `json:"file_value"`
	BankValue    Money       `json:"bank_value"`
	ValueDelta   Money       `json:"value_delta"`
}

// DivergentAssociate pairs the two disagreeing notes with their
// computed divergence.
type DivergentAssociate struct {
	File       FileNote   `json:"file_note"`
	Bank       BankNote   `json:"bank_note"`
	Divergence Divergence `json:"divergence"`
}

// CategorySummary is one row of the top-level summary table: totals per
// business category, per side, with file-minus-bank deltas.
type CategorySummary struct {
	Category      string `json:"category"`
	FileQuantity  int64  `json:"file_quantity"`
	BankQuantity  int64  `json:"bank_quantity"`
	QuantityDelta int64  `json:"quantity_delta"`
	FileValue     Money  `json:"file_value"`
	BankValue     Money  `json:"bank_value"`
	ValueDelta    Money  `json:"value_delta"`
}

// MalformedNoteError is a data-quality warning: one note violated a
// structural invariant and was excluded from matching.
type MalformedNoteError struct {
	Side       Side   `json:"side"`
	NoteNumber string `json:"note_number"`
	Reason     string `json:"reason"`
}

func (e MalformedNoteError) Error() string {
	return fmt.Sprintf("malformed %s note %s: %s", e.Side, e.NoteNumber, e.Reason)
}

// DuplicateKeyError is a data-quality warning: two notes on the same
// side share a MatchKey, so neither can be meaningfully paired.
type DuplicateKeyError struct {
	Side Side     `json:"side"`
	Key  MatchKey `json:"key"`
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s note key %s", e.Side, e.Key)
}

// MatchSuggestion is an advisory hint that an exclusive note on one
// side probably corresponds to an exclusive note on the other side
// under a mistyped note number. It never changes classification.
type MatchSuggestion struct {
	FileKey  MatchKey `json:"file_key"`
	BankKey  MatchKey `json:"bank_key"`
	Distance int      `json:"distance"`
}

// ReconciliationReport is the root aggregate for one reconciliation
// run. Built once by the assembler, immutable afterward; reprocessing a
// batch produces a brand-new report with the same import batch id.
type ReconciliationReport struct {
	ReportID            string               `json:"report_id"`
	ImportBatchID       string               `json:"import_batch_id"`
	ReferenceDate       time.Time            `json:"reference_date"`
	CategorySummaries   []CategorySummary    `json:"category_summaries"`
	DivergentAssociates []DivergentAssociate `json:"divergent_associates"`
	FileOnlyNotes       []FileNote           `json:"file_only_notes"`
	BankOnlyNotes       []BankNote           `json:"bank_only_notes"`
	MalformedNotes      []MalformedNoteError `json:"malformed_notes"`
	DuplicateKeys       []DuplicateKeyError  `json:"duplicate_keys"`
	Suggestions         []MatchSuggestion    `json:"suggestions,omitempty"`
	GeneratedAt         time.Time            `json:"generated_at"`
}
