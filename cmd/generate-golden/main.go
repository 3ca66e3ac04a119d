package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agbru/matmulbench/internal/matrix"
)

// Counts holds the operation counts expected from one algorithm.
type Counts struct {
	Additions       uint64 `json:"additions"`
	Multiplications uint64 `json:"multiplications"`
}

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	A        [][]int64 `json:"a"`
	B        [][]int64 `json:"b"`
	Product  [][]int64 `json:"product"`
	Naive    Counts    `json:"naive"`
	Strassen Counts    `json:"strassen"`
}

type target struct {
	seed     uint64
	order    int
	min, max int64
}

func main() {
	outputDir := flag.String("out", "internal/multiply/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "multiply_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Every power-of-two order up to 16, with non-negative and signed
	// entries, each from its own seed.
	targets := []target{
		{1, 1, 0, 10},
		{2, 2, -10, 10},
		{3, 4, 0, 10},
		{4, 4, -10, 10},
		{5, 8, 0, 10},
		{6, 8, -10, 10},
		{7, 16, 0, 10},
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, tc := range targets {
		gen, err := matrix.NewGenerator(tc.min, tc.max, tc.seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating generator: %v\n", err)
			os.Exit(1)
		}
		a, b, err := gen.Pair(tc.order)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating operands: %v\n", err)
			os.Exit(1)
		}
		rowsA, rowsB := a.Rows(), b.Rows()
		n := uint64(tc.order)
		data = append(data, GoldenData{
			Name:     fmt.Sprintf("seed%d-n%d", tc.seed, tc.order),
			Order:    tc.order,
			A:        rowsA,
			B:        rowsB,
			Product:  tripleLoop(rowsA, rowsB),
			Naive:    Counts{Additions: n * n * n, Multiplications: n * n * n},
			Strassen: strassenCounts(tc.order),
		})
		fmt.Printf("Generated order %d (seed %d)\n", tc.order, tc.seed)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// tripleLoop is the oracle: the textbook product on plain slices.
func tripleLoop(a, b [][]int64) [][]int64 {
	n := len(a)
	c := make([][]int64, n)
	for i := range c {
		c[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return c
}

// strassenCounts solves the recurrences M(n) = 7·M(n/2) and
// A(n) = 7·A(n/2) + 18·(n/2)² with M(2) = 7, A(2) = 18. The order-1 base
// case is a bare scalar product and counts nothing.
func strassenCounts(n int) Counts {
	switch {
	case n < 2:
		return Counts{}
	case n == 2:
		return Counts{Additions: 18, Multiplications: 7}
	}
	half := uint64(n / 2)
	sub := strassenCounts(n / 2)
	return Counts{
		Additions:       7*sub.Additions + 18*half*half,
		Multiplications: 7 * sub.Multiplications,
	}
}
