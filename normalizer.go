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
	"fmt"
	"strings"

	"github.com/rmachado/concilia/model"
)

// NormalizeFileNotes canonicalizes the raw extract records handed over
// by the import parser. Notes violating a structural invariant are
// excluded and reported as warnings; they are never silently repaired.
// The returned error is reserved for integration mistakes such as
// non-finite monetary values.
func NormalizeFileNotes(raw []model.RawNote, toleranceCents int64) ([]model.FileNote, []model.MalformedNoteError, error) {
	notes, warnings, err := normalizeNotes(raw, model.SideFile, toleranceCents)
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.FileNote, len(notes))
	for i, n := range notes {
		out[i] = model.FileNote{Note: n}
	}
	return out, warnings, nil
}

// NormalizeBankNotes canonicalizes the notes previously persisted for
// the same import batch. Same contract as NormalizeFileNotes.
func NormalizeBankNotes(raw []model.RawNote, toleranceCents int64) ([]model.BankNote, []model.MalformedNoteError, error) {
	notes, warnings, err := normalizeNotes(raw, model.SideBank, toleranceCents)
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.BankNote, len(notes))
	for i, n := range notes {
		out[i] = model.BankNote{Note: n}
	}
	return out, warnings, nil
}

func normalizeNotes(raw []model.RawNote, side model.Side, toleranceCents int64) ([]model.Note, []model.MalformedNoteError, error) {
	notes := make([]model.Note, 0, len(raw))
	warnings := make([]model.MalformedNoteError, 0)

	for _, r := range raw {
		note, reason, err := normalizeNote(r, toleranceCents)
		if err != nil {
			return nil, nil, err
		}
		if reason != "" {
			warnings = append(warnings, model.MalformedNoteError{
				Side:       side,
				NoteNumber: strings.TrimSpace(r.NoteNumber),
				Reason:     reason,
			})
			continue
		}
		notes = append(notes, note)
	}

	return notes, warnings, nil
}

// normalizeNote converts one raw record. A non-empty reason marks the
// note malformed; a non-nil error aborts the whole run.
func normalizeNote(r model.RawNote, toleranceCents int64) (model.Note, string, error) {
	note := model.Note{
		NoteNumber:    strings.TrimSpace(r.NoteNumber),
		AssociateCode: strings.TrimSpace(r.AssociateCode),
		AssociateName: strings.TrimSpace(r.AssociateName),
		Document:      model.NormalizeDocument(r.Document),
		Items:         make([]model.NoteItem, 0, len(r.Items)),
	}

	var err error
	if note.TotalDebits, err = model.MoneyFromFloat(r.TotalDebits); err != nil {
		return model.Note{}, "", err
	}
	if note.TotalCredits, err = model.MoneyFromFloat(r.TotalCredits); err != nil {
		return model.Note{}, "", err
	}
	if note.BilledValue, err = model.MoneyFromFloat(r.BilledValue); err != nil {
		return model.Note{}, "", err
	}

	for _, item := range r.Items {
		if item.Quantity < 0 {
			return model.Note{}, fmt.Sprintf("item %q has negative quantity %d", item.ProductCode, item.Quantity), nil
		}

		direction := model.CreditOrDebit(strings.ToUpper(strings.TrimSpace(item.CreditOrDebit)))
		if direction != model.Credit && direction != model.Debit {
			return model.Note{}, fmt.Sprintf("item %q has invalid credit_or_debit %q", item.ProductCode, item.CreditOrDebit), nil
		}

		unitValue, err := model.MoneyFromFloat(item.UnitValue)
		if err != nil {
			return model.Note{}, "", err
		}
		totalValue, err := model.MoneyFromFloat(item.TotalValue)
		if err != nil {
			return model.Note{}, "", err
		}

		if !totalValue.EqualsWithinTolerance(unitValue.MulInt(item.Quantity), toleranceCents) {
			return model.Note{}, fmt.Sprintf("item %q total %s does not equal unit %s x %d",
				item.ProductCode, totalValue, unitValue, item.Quantity), nil
		}

		note.Items = append(note.Items, model.NoteItem{
			Description:   strings.TrimSpace(item.Description),
			ProductCode:   strings.TrimSpace(item.ProductCode),
			Quantity:      item.Quantity,
			UnitValue:     unitValue,
			TotalValue:    totalValue,
			CreditOrDebit: direction,
			Category:      strings.TrimSpace(item.Category),
		})
	}

	if !note.BilledValue.EqualsWithinTolerance(note.TotalDebits.Sub(note.TotalCredits), toleranceCents) {
		return model.Note{}, fmt.Sprintf("billed value %s does not equal debits %s minus credits %s",
			note.BilledValue, note.TotalDebits, note.TotalCredits), nil
	}

	return note, "", nil
}
