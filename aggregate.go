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

// SummarizeByCategory explodes every note to its items and totals
// quantity and value per business category, per side. A category seen
// on only one side still produces a row with zero totals on the other.
//
// Row order is first-seen category over a fixed traversal: file notes
// then bank notes, so the summary is reproducible for a given input.
func SummarizeByCategory(fileNotes []model.FileNote, bankNotes []model.BankNote) []model.CategorySummary {
	order := make([]string, 0)
	rows := make(map[string]*model.CategorySummary)

	row := func(category string) *model.CategorySummary {
		if existing, ok := rows[category]; ok {
			return existing
		}
		summary := &model.CategorySummary{Category: category}
		rows[category] = summary
		order = append(order, category)
		return summary
	}

	for _, note := range fileNotes {
		for _, item := range note.Items {
			summary := row(item.Category)
			summary.FileQuantity += item.Quantity
			summary.FileValue = summary.FileValue.Add(item.TotalValue)
		}
	}
	for _, note := range bankNotes {
		for _, item := range note.Items {
			summary := row(item.Category)
			summary.BankQuantity += item.Quantity
			summary.BankValue = summary.BankValue.Add(item.TotalValue)
		}
	}

	out := make([]model.CategorySummary, 0, len(order))
	for _, category := range order {
		summary := rows[category]
		summary.QuantityDelta = summary.FileQuantity - summary.BankQuantity
		summary.ValueDelta = summary.FileValue.Sub(summary.BankValue)
		out = append(out, *summary)
	}
	return out
}
