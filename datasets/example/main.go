package main

// Example command that demonstrates assembling an essay dataset from a raw
// essay CSV plus feature tables, slicing it with Select, and converting a
// small batch into gomlx tensors using the helpers provided in the package.
//
// Usage:
//   go run ./example -raw ../assets/asap/training_set.csv -features "../output/*_features.csv"
//
// If no files are found the example will print an error and exit.

import (
	"flag"
	"fmt"
	"log"

	"github.com/Noofbiz/essayBowl/datasets"
)

func main() {
	rawPath := flag.String("raw", "../assets/asap/training_set.csv", "raw essay CSV")
	featGlob := flag.String("features", "../output/*_features.csv", "feature CSV glob")
	flag.Parse()

	raw, err := datasets.ReadRawEssays(*rawPath)
	if err != nil {
		log.Fatalf("failed to load raw essays: %v", err)
	}
	fmt.Printf("Loaded %d raw essays\n", raw.Len())

	x, header, err := datasets.ReadFeatureGlob(*featGlob)
	if err != nil {
		log.Fatalf("failed to load feature tables: %v", err)
	}
	fmt.Printf("Loaded %d feature columns: %v\n", len(header), header)

	ds, err := raw.Labeled(x)
	if err != nil {
		log.Fatalf("failed to assemble dataset: %v", err)
	}
	fmt.Printf("Dataset: %d rows, %d features\n", ds.Len(), ds.NumFeatures())

	// Slice out the first few rows and show Select preserves alignment.
	n := min(8, ds.Len())
	indices := make([]int, n)
	for i := range n {
		indices[i] = i
	}
	sub, err := ds.Select(indices)
	if err != nil {
		log.Fatalf("failed to select rows: %v", err)
	}
	fmt.Printf("Selected %d rows; first label %v, essay set %d\n", sub.Len(), sub.Y[0], sub.Group[0])

	// Convert to flat contiguous buffers and then to gomlx tensors.
	flat, err := datasets.MakeFeatureBatchFlat(sub.X, sub.Y)
	if err != nil {
		log.Fatalf("failed to make feature batch flat: %v", err)
	}
	inT, laT, err := flat.ToGomlxTensors()
	if err != nil {
		log.Fatalf("failed to convert batch to gomlx tensors: %v", err)
	}

	// We don't depend on any particular tensor API here; just show we have tensors.
	fmt.Printf("Created tensors: input=%T label=%T\n", inT, laT)
	fmt.Printf("  Input shape: [%d, %d]\n", flat.BatchSize, flat.InputDim)
}
