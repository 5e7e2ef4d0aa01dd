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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rmachado/concilia/model"
)

// RunReconciliation is the request body for starting a reconciliation
// run: one import batch plus the raw note collections of both sides.
type RunReconciliation struct {
	ImportBatchID string          `json:"import_batch_id"`
	ReferenceDate time.Time       `json:"reference_date"`
	FileNotes     []model.RawNote `json:"file_notes"`
	BankNotes     []model.RawNote `json:"bank_notes"`
}

func (r *RunReconciliation) ValidateRunReconciliation() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ImportBatchID, validation.Required),
		validation.Field(&r.ReferenceDate, validation.Required),
	)
}

func (r *RunReconciliation) ToImportBatch() model.ImportBatch {
	return model.ImportBatch{
		ImportBatchID: r.ImportBatchID,
		ReferenceDate: r.ReferenceDate,
	}
}

// PageQuery carries the paging and filter parameters of the report
// query endpoints. Zero-based page index.
type PageQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Filter   string `form:"filter"`
}
