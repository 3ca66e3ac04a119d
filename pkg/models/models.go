/*
Package models defines the JSON documents produced by matmulbench.

The same structures are returned by the HTTP API (GET /multiply) and
written by the command line when --json is given, so that scripts can
consume either source with one schema.
*/
package models

// OperationCounts holds the scalar operation counts of one multiplication.
type OperationCounts struct {
	Additions       uint64 `json:"additions"`
	Multiplications uint64 `json:"multiplications"`
}

// Delta is the signed difference of a run from the baseline run.
type Delta struct {
	ElapsedMS       float64 `json:"elapsed_ms"`
	Additions       int64   `json:"additions"`
	Multiplications int64   `json:"multiplications"`
}

// AlgorithmRun is the outcome of one algorithm.
type AlgorithmRun struct {
	// Algorithm is the display name of the algorithm.
	Algorithm string          `json:"algorithm"`
	ElapsedMS float64         `json:"elapsed_ms"`
	Counts    OperationCounts `json:"counts"`
	// Delta is absent for the baseline run and for failed runs.
	Delta *Delta `json:"delta_vs_naive,omitempty"`
	// Product is only included for small orders.
	Product [][]int64 `json:"product,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// MultiplyResponse describes a complete benchmark: the operands, every run
// and whether the products agree.
type MultiplyResponse struct {
	Order int    `json:"order"`
	Seed  uint64 `json:"seed"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
	// NCubed is n³, the operation count of the triple loop, for reference.
	NCubed     uint64         `json:"n_cubed"`
	A          [][]int64      `json:"a,omitempty"`
	B          [][]int64      `json:"b,omitempty"`
	Runs       []AlgorithmRun `json:"runs"`
	Consistent bool           `json:"consistent"`
	Duration   string         `json:"duration"`
}

// AlgorithmInfo describes a registered algorithm.
type AlgorithmInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// AlgorithmsResponse is the body of GET /algorithms.
type AlgorithmsResponse struct {
	Algorithms []AlgorithmInfo `json:"algorithms"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}
