package models

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewRunID generates a sortable unique identifier for one audit run.
// Diagnostics and report output carry it so operators can correlate a
// rendered report with the raw engine exchange.
func NewRunID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}
