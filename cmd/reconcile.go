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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rmachado/concilia"
	"github.com/rmachado/concilia/model"
	"github.com/spf13/cobra"
)

func readRawNotes(path string) ([]model.RawNote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var notes []model.RawNote
	if err := json.NewDecoder(f).Decode(&notes); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return notes, nil
}

// reconcileCommands returns the Cobra command that runs one
// reconciliation from two JSON files of raw notes and writes the report
// to stdout, as JSON or CSV.
func reconcileCommands(b *conciliaInstance) *cobra.Command {
	var batchID string
	var referenceDate string
	var format string

	cmd := &cobra.Command{
		Use:   "reconcile <file-notes.json> <bank-notes.json>",
		Short: "reconcile an import batch against persisted billing records",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			fileRaw, err := readRawNotes(args[0])
			if err != nil {
				log.Fatal(err)
			}
			bankRaw, err := readRawNotes(args[1])
			if err != nil {
				log.Fatal(err)
			}

			refDate, err := time.Parse(time.DateOnly, referenceDate)
			if err != nil {
				log.Fatalf("invalid reference date %q: %v", referenceDate, err)
			}

			batch := model.ImportBatch{ImportBatchID: batchID, ReferenceDate: refDate}
			report, err := b.concilia.Reconcile(context.Background(), batch, fileRaw, bankRaw)
			if err != nil {
				log.Fatal(err)
			}

			switch format {
			case "csv":
				if err := concilia.NewCSVExporter().Export(os.Stdout, report); err != nil {
					log.Fatal(err)
				}
			default:
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					log.Fatal(err)
				}
			}
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "import batch id")
	cmd.Flags().StringVar(&referenceDate, "reference-date", time.Now().Format(time.DateOnly), "billing period the extract covers (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}
