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
	"strings"
	"time"
)

// CreditOrDebit marks the direction of a billable line.
type CreditOrDebit string

const (
	Credit CreditOrDebit = "CREDIT"
	Debit  CreditOrDebit = "DEBIT"
)

// Side identifies which system a note came from.
type Side string

const (
	SideFile Side = "file"
	SideBank Side = "bank"
)

// ImportBatch identifies one reconciliation run: the billing period one
// SPC extract covers. Immutable once the extract finishes parsing.
type ImportBatch struct {
	ImportBatchID string    `json:"import_batch_id"`
	ReferenceDate time.Time `json:"reference_date"`
}

// NoteItem is one billable line of a note.
type NoteItem struct {
	Description   string        `json:"description"`
	ProductCode   string        `json:"product_code"`
	Quantity      int64         `json:"quantity"`
	UnitValue     Money         `json:"unit_value"`
	TotalValue    Money         `json:"total_value"`
	CreditOrDebit CreditOrDebit `json:"credit_or_debit"`
	Category      string        `json:"category"`
}

// ItemKey is the identity of a line item inside a note. Two items are
// the same line iff product code and description both match; values are
// compared separately.
type ItemKey struct {
	ProductCode string `json:"product_code"`
	Description string `json:"description"`
}

func (i NoteItem) Key() ItemKey {
	return ItemKey{ProductCode: i.ProductCode, Description: i.Description}
}

// MatchKey pairs notes across the two sides. It is derived, never
// stored: note number plus associate code, compared case-sensitively.
type MatchKey struct {
	NoteNumber    string `json:"note_number"`
	AssociateCode string `json:"associate_code"`
}

func (k MatchKey) String() string {
	return k.NoteNumber + "/" + k.AssociateCode
}

// Note is the canonical shape both sides are normalized into.
type Note struct {
	NoteNumber    string     `json:"note_number"`
	AssociateCode string     `json:"associate_code"`
	AssociateName string     `json:"associate_name"`
	Document      string     `json:"document"`
	Items         []NoteItem `json:"items"`
	TotalDebits   Money      `json:"total_debits"`
	TotalCredits  Money      `json:"total_credits"`
	BilledValue   Money      `json:"billed_value"`
}

func (n Note) Key() MatchKey {
	return MatchKey{NoteNumber: n.NoteNumber, AssociateCode: n.AssociateCode}
}

// FileNote originates from the just-parsed SPC extract.
type FileNote struct {
	Note
}

// BankNote originates from billing records already persisted for the
// same import batch.
type BankNote struct {
	Note
}

// RawNote is a note as handed over by the import parser or the billing
// store adapter: textually parsed, not yet shape-normalized or
// validated.
type RawNote struct {
	NoteNumber    string        `json:"note_number"`
	AssociateCode string        `json:"associate_code"`
	AssociateName string        `json:"associate_name"`
	Document      string        `json:"document"`
	Items         []RawNoteItem `json:"items"`
	TotalDebits   float64       `json:"total_debits"`
	TotalCredits  float64       `json:"total_credits"`
	BilledValue   float64       `json:"billed_value"`
}

type RawNoteItem struct {
	Description   string  `json:"description"`
	ProductCode   string  `json:"product_code"`
	Quantity      int64   `json:"quantity"`
	UnitValue     float64 `json:"unit_value"`
	TotalValue    float64 `json:"total_value"`
	CreditOrDebit string  `json:"credit_or_debit"`
	Category      string  `json:"category"`
}

// NormalizeDocument strips everything that is not a letter or digit
// from a CPF/CNPJ, so "123.456.789-00" and "12345678900" compare equal.
func NormalizeDocument(document string) string {
	var b strings.Builder
	b.Grow(len(document))
	for _, r := range document {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
