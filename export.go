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
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rmachado/concilia/model"
)

// ExportAdapter streams a finished report for the presentation layer.
// Two exports of the same report are byte-for-byte identical: the
// report is immutable and section ordering is fixed.
type ExportAdapter interface {
	Export(w io.Writer, report *model.ReconciliationReport) error
	ContentType() string
}

// CSVExporter writes the three report sections plus the data-quality
// warnings as one CSV document with section markers.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

func (e *CSVExporter) Export(w io.Writer, report *model.ReconciliationReport) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"section", "category_summary"},
		{"category", "file_quantity", "bank_quantity", "quantity_delta", "file_value", "bank_value", "value_delta"},
	}
	for _, s := range report.CategorySummaries {
		rows = append(rows, []string{
			s.Category,
			strconv.FormatInt(s.FileQuantity, 10),
			strconv.FormatInt(s.BankQuantity, 10),
			strconv.FormatInt(s.QuantityDelta, 10),
			s.FileValue.String(),
			s.BankValue.String(),
			s.ValueDelta.String(),
		})
	}

	rows = append(rows,
		[]string{"section", "divergent_associates"},
		[]string{"note_number", "associate_code", "associate_name", "file_value", "bank_value", "value_delta", "missing_items", "extra_items", "item_deltas"},
	)
	for _, d := range report.DivergentAssociates {
		rows = append(rows, []string{
			d.File.NoteNumber,
			d.File.AssociateCode,
			d.File.AssociateName,
			d.Divergence.FileValue.String(),
			d.Divergence.BankValue.String(),
			d.Divergence.ValueDelta.String(),
			strconv.Itoa(len(d.Divergence.MissingItems)),
			strconv.Itoa(len(d.Divergence.ExtraItems)),
			strconv.Itoa(len(d.Divergence.ItemDeltas)),
		})
	}

	rows = append(rows,
		[]string{"section", "file_only_notes"},
		[]string{"note_number", "associate_code", "associate_name", "billed_value"},
	)
	for _, n := range report.FileOnlyNotes {
		rows = append(rows, []string{n.NoteNumber, n.AssociateCode, n.AssociateName, n.BilledValue.String()})
	}

	rows = append(rows,
		[]string{"section", "bank_only_notes"},
		[]string{"note_number", "associate_code", "associate_name", "billed_value"},
	)
	for _, n := range report.BankOnlyNotes {
		rows = append(rows, []string{n.NoteNumber, n.AssociateCode, n.AssociateName, n.BilledValue.String()})
	}

	rows = append(rows,
		[]string{"section", "data_quality"},
		[]string{"kind", "side", "note_number", "detail"},
	)
	for _, m := range report.MalformedNotes {
		rows = append(rows, []string{"malformed_note", string(m.Side), m.NoteNumber, m.Reason})
	}
	for _, d := range report.DuplicateKeys {
		rows = append(rows, []string{"duplicate_key", string(d.Side), d.Key.NoteNumber, d.Key.String()})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
