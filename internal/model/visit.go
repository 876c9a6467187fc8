package model

import "time"

// Visit is one row of the enterence table: a single POST /enter call.
// The first row carries counter 1; every later audit row carries -1.
// JSON names follow the wire format existing clients already read.
type Visit struct {
	ID          int64     `json:"id"`
	Counter     int       `json:"counter"`
	Text        string    `json:"text"`
	LastEntered time.Time `json:"lastEnetered"`
}
