package model

import "time"

// ImportRun records one load of the invoice CSV into the local store.
type ImportRun struct {
	ImportedAt time.Time
	ID         string
	Source     string
	RowCount   int
}
