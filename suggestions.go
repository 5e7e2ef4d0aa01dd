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
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// SuggestCounterparts scans the exclusive notes of a report for likely
// typos: a file-only and a bank-only note of the same associate whose
// note numbers sit within maxDistance edits of each other. The output
// is advisory for the data-quality panel and never reclassifies a note.
func SuggestCounterparts(fileOnly []model.FileNote, bankOnly []model.BankNote, maxDistance int) []model.MatchSuggestion {
	if maxDistance <= 0 {
		return nil
	}

	var suggestions []model.MatchSuggestion
	for _, fileNote := range fileOnly {
		for _, bankNote := range bankOnly {
			if fileNote.AssociateCode != bankNote.AssociateCode {
				continue
			}
			distance := levenshtein.DistanceForStrings(
				[]rune(fileNote.NoteNumber),
				[]rune(bankNote.NoteNumber),
				levenshtein.DefaultOptions,
			)
			if distance > 0 && distance <= maxDistance {
				suggestions = append(suggestions, model.MatchSuggestion{
					FileKey:  fileNote.Key(),
					BankKey:  bankNote.Key(),
					Distance: distance,
				})
			}
		}
	}
	return suggestions
}
