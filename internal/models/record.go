package models

// Record is one standardized inventory line produced by ingestion.
// Quantity is already coerced: non-numeric or missing source values are 0.
type Record struct {
	Type     string
	Pattern  string
	Color    string
	Size     string
	Quantity int
}
