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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmachado/concilia/model"
)

func TestSuggestCounterpartsFindsNearMisses(t *testing.T) {
	item := makeItem("MEN", "Mensalidade", 1, 1000)
	fileOnly := []model.FileNote{fileNote(makeNote("12345", "S1", 1000, item))}
	bankOnly := []model.BankNote{
		bankNote(makeNote("12354", "S1", 1000, item)), // transposed digits
		bankNote(makeNote("99999", "S1", 1000, item)), // too far
	}

	suggestions := SuggestCounterparts(fileOnly, bankOnly, 2)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "12345", suggestions[0].FileKey.NoteNumber)
	assert.Equal(t, "12354", suggestions[0].BankKey.NoteNumber)
	assert.Equal(t, 2, suggestions[0].Distance)
}

func TestSuggestCounterpartsRequiresSameAssociate(t *testing.T) {
	item := makeItem("MEN", "Mensalidade", 1, 1000)
	fileOnly := []model.FileNote{fileNote(makeNote("12345", "S1", 1000, item))}
	bankOnly := []model.BankNote{bankNote(makeNote("12346", "S2", 1000, item))}

	assert.Empty(t, SuggestCounterparts(fileOnly, bankOnly, 2))
}

func TestSuggestCounterpartsDisabled(t *testing.T) {
	item := makeItem("MEN", "Mensalidade", 1, 1000)
	fileOnly := []model.FileNote{fileNote(makeNote("12345", "S1", 1000, item))}
	bankOnly := []model.BankNote{bankNote(makeNote("12346", "S1", 1000, item))}

	assert.Empty(t, SuggestCounterparts(fileOnly, bankOnly, 0))
}

func TestSuggestCounterpartsIgnoresIdenticalNumbers(t *testing.T) {
	// Distance zero would mean the notes share a key; those never sit in
	// the exclusive sections together, but a note number repeated under
	// a different key must not suggest itself.
	item := makeItem("MEN", "Mensalidade", 1, 1000)
	fileOnly := []model.FileNote{fileNote(makeNote("12345", "S1", 1000, item))}
	bankOnly := []model.BankNote{bankNote(makeNote("12345", "S1", 1000, item))}

	assert.Empty(t, SuggestCounterparts(fileOnly, bankOnly, 2))
}
