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
	"github.com/rmachado/concilia/model"
)

// MatchNotes pairs file and bank notes by MatchKey and classifies every
// distinct key into exactly one MatchOutcome.
//
// Output order is deterministic: keys in the order they are first seen
// scanning the file notes, then remaining bank-only keys in bank order.
// Keys duplicated within one side are excluded from matching entirely
// and reported as warnings.
func MatchNotes(fileNotes []model.FileNote, bankNotes []model.BankNote, toleranceCents int64) ([]model.MatchOutcome, []model.DuplicateKeyError) {
	fileIndex, fileOrder, fileDups := indexFileNotes(fileNotes)
	bankIndex, bankOrder, bankDups := indexBankNotes(bankNotes)

	warnings := make([]model.DuplicateKeyError, 0, len(fileDups)+len(bankDups))
	excluded := make(map[model.MatchKey]bool, len(fileDups)+len(bankDups))
	for _, key := range fileDups {
		warnings = append(warnings, model.DuplicateKeyError{Side: model.SideFile, Key: key})
		excluded[key] = true
	}
	for _, key := range bankDups {
		warnings = append(warnings, model.DuplicateKeyError{Side: model.SideBank, Key: key})
		excluded[key] = true
	}

	outcomes := make([]model.MatchOutcome, 0, len(fileOrder)+len(bankOrder))
	seen := make(map[model.MatchKey]bool, len(fileOrder))

	for _, key := range fileOrder {
		if excluded[key] {
			continue
		}
		seen[key] = true
		fileNote := fileIndex[key]
		bankNote, inBank := bankIndex[key]
		if !inBank {
			outcomes = append(outcomes, model.MatchOutcome{Type: model.FileOnly, Key: key, File: fileNote})
			continue
		}
		outcomeType := model.DivergentMatch
		if notesAgree(fileNote.Note, bankNote.Note, toleranceCents) {
			outcomeType = model.ExactMatch
		}
		outcomes = append(outcomes, model.MatchOutcome{Type: outcomeType, Key: key, File: fileNote, Bank: bankNote})
	}

	for _, key := range bankOrder {
		if excluded[key] || seen[key] {
			continue
		}
		outcomes = append(outcomes, model.MatchOutcome{Type: model.BankOnly, Key: key, Bank: bankIndex[key]})
	}

	return outcomes, warnings
}

// notesAgree holds iff billed values are equal within tolerance and the
// item multisets are equal by (productCode, description, quantity).
func notesAgree(file, bank model.Note, toleranceCents int64) bool {
	if !file.BilledValue.EqualsWithinTolerance(bank.BilledValue, toleranceCents) {
		return false
	}
	if len(file.Items) != len(bank.Items) {
		return false
	}

	type itemIdentity struct {
		key model.ItemKey
		qty int64
	}
	counts := make(map[itemIdentity]int, len(file.Items))
	for _, item := range file.Items {
		counts[itemIdentity{key: item.Key(), qty: item.Quantity}]++
	}
	for _, item := range bank.Items {
		id := itemIdentity{key: item.Key(), qty: item.Quantity}
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}

func indexFileNotes(notes []model.FileNote) (map[model.MatchKey]*model.FileNote, []model.MatchKey, []model.MatchKey) {
	index := make(map[model.MatchKey]*model.FileNote, len(notes))
	order := make([]model.MatchKey, 0, len(notes))
	var dups []model.MatchKey
	dupSeen := make(map[model.MatchKey]bool)

	for i := range notes {
		key := notes[i].Key()
		if _, exists := index[key]; exists {
			if !dupSeen[key] {
				dupSeen[key] = true
				dups = append(dups, key)
			}
			continue
		}
		index[key] = &notes[i]
		order = append(order, key)
	}
	return index, order, dups
}

func indexBankNotes(notes []model.BankNote) (map[model.MatchKey]*model.BankNote, []model.MatchKey, []model.MatchKey) {
	index := make(map[model.MatchKey]*model.BankNote, len(notes))
	order := make([]model.MatchKey, 0, len(notes))
	var dups []model.MatchKey
	dupSeen := make(map[model.MatchKey]bool)

	for i := range notes {
		key := notes[i].Key()
		if _, exists := index[key]; exists {
			if !dupSeen[key] {
				dupSeen[key] = true
				dups = append(dups, key)
			}
			continue
		}
		index[key] = &notes[i]
		order = append(order, key)
	}
	return index, order, dups
}

// keysExcludedFrom collects every key a duplicate warning names, so the
// caller can drop those notes before aggregation.
func keysExcludedFrom(warnings []model.DuplicateKeyError) map[model.MatchKey]bool {
	excluded := make(map[model.MatchKey]bool, len(warnings))
	for _, w := range warnings {
		excluded[w.Key] = true
	}
	return excluded
}
