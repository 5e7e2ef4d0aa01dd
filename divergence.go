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

// AnalyzeDivergence expands one divergent pair into item-level diffs.
//
// Item identity is (productCode, description); value comparison comes
// second. An item found on both sides with a differing quantity or unit
// value becomes one ItemDelta entry, never a missing plus an extra.
// ValueDelta is file minus bank, always.
func AnalyzeDivergence(file model.FileNote, bank model.BankNote) model.Divergence {
	div := model.Divergence{
		MissingItems: []model.NoteItem{},
		ExtraItems:   []model.NoteItem{},
		ItemDeltas:   []model.ItemDelta{},
		FileValue:    file.BilledValue,
		BankValue:    bank.BilledValue,
		ValueDelta:   file.BilledValue.Sub(bank.BilledValue),
	}

	bankByKey := make(map[model.ItemKey]model.NoteItem, len(bank.Items))
	for _, item := range bank.Items {
		bankByKey[item.Key()] = item
	}

	matchedKeys := make(map[model.ItemKey]bool, len(file.Items))
	for _, fileItem := range file.Items {
		bankItem, ok := bankByKey[fileItem.Key()]
		if !ok {
			div.ExtraItems = append(div.ExtraItems, fileItem)
			continue
		}
		matchedKeys[fileItem.Key()] = true
		if fileItem.Quantity != bankItem.Quantity || fileItem.UnitValue != bankItem.UnitValue {
			div.ItemDeltas = append(div.ItemDeltas, model.ItemDelta{
				ProductCode:    fileItem.ProductCode,
				Description:    fileItem.Description,
				FileQuantity:   fileItem.Quantity,
				BankQuantity:   bankItem.Quantity,
				QuantityDelta:  fileItem.Quantity - bankItem.Quantity,
				FileUnitValue:  fileItem.UnitValue,
				BankUnitValue:  bankItem.UnitValue,
				UnitValueDelta: fileItem.UnitValue.Sub(bankItem.UnitValue),
			})
		}
	}

	for _, bankItem := range bank.Items {
		if !matchedKeys[bankItem.Key()] {
			div.MissingItems = append(div.MissingItems, bankItem)
		}
	}

	return div
}
