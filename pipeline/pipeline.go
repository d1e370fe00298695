// Package pipeline wraps the feature-engineering steps as file-driven
// stages: each function reads structured input from a path, runs one
// transformation, and writes structured output to a path. Chaining the
// stages turns the raw essay table into numeric feature tables for the
// cross-prediction harness.
//
// The stages make assumptions about file formats: tokenized documents travel
// as JSON lists, numeric tables as headed CSV, and the doc2vec artifact as
// gob.
package pipeline

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/Noofbiz/essayBowl/datasets"
	"github.com/Noofbiz/essayBowl/embed"
	"github.com/Noofbiz/essayBowl/tokens"
	"github.com/Noofbiz/essayBowl/vocab"
)

// Tokenize reads the raw essay CSV and writes the tokenized documents as a
// JSON list, one token list per essay.
func Tokenize(infile, outfile string) error {
	raw, err := datasets.ReadRawEssays(infile)
	if err != nil {
		return err
	}
	tk := tokens.NewTokenizer()
	return SaveDocs(outfile, tk.Apply(raw.Essay))
}

// TokenFeatures reads tokenized documents and writes per-document summary
// statistics of token length: mean and (population) standard deviation.
func TokenFeatures(infile, outfile string) error {
	docs, err := LoadDocs(infile)
	if err != nil {
		return err
	}
	rows := make([][]float32, len(docs))
	for i, doc := range docs {
		lengths := make([]float64, len(doc))
		for j, tok := range doc {
			lengths[j] = float64(len([]rune(tok)))
		}
		var mean, std float64
		if len(lengths) > 0 {
			mean = stat.Mean(lengths, nil)
			std = stat.PopStdDev(lengths, nil)
		}
		rows[i] = []float32{float32(mean), float32(std)}
	}
	return datasets.WriteFeatureCSV(outfile, []string{"word_len_mean", "word_len_std"}, rows)
}

// ReduceDocsToSmallerVocab simplifies tokenized documents by reducing the
// vocabulary: a fixed-size vocabulary is built from the documents in infile,
// and out-of-vocabulary tokens are dropped.
//
// If targetFile is non-empty, the documents in targetFile are reduced
// instead (infile is still the basis for the vocabulary); this is how
// held-out text is mapped onto a training vocabulary.
func ReduceDocsToSmallerVocab(infile, outfile, targetFile string) error {
	docs, err := LoadDocs(infile)
	if err != nil {
		return err
	}
	vc := vocab.New(vocab.DefaultSize)
	vc.BuildFromTokenizedDocs(docs)

	target := docs
	if targetFile != "" {
		target, err = LoadDocs(targetFile)
		if err != nil {
			return err
		}
	}
	reduced, err := vc.ReduceDocs(target)
	if err != nil {
		return err
	}
	return SaveDocs(outfile, reduced)
}

// FitWordVectors fits skip-gram word embeddings (dimension 100, 25 passes)
// over reduced documents and writes the token -> vector table as CSV.
func FitWordVectors(infile, outfile string, seed int64) error {
	docs, err := LoadDocs(infile)
	if err != nil {
		return err
	}
	wv, err := embed.FitWord2Vec(docs, embed.Word2VecConfig{Seed: seed})
	if err != nil {
		return fmt.Errorf("fitting word vectors: %w", err)
	}
	return WriteEmbeddingCSV(outfile, wv.Vectors, wv.Dim)
}

// EssayFeaturesFromWordVectors reads a token embedding table and reduced
// documents and writes one fixed-length feature vector per document, the
// mean of its token embeddings.
func EssayFeaturesFromWordVectors(embeddingFile, docsFile, outfile string) error {
	embedding, dim, err := ReadEmbeddingCSV(embeddingFile)
	if err != nil {
		return err
	}
	docs, err := LoadDocs(docsFile)
	if err != nil {
		return err
	}
	dft, err := vocab.NewDocFeaturizer(embedding)
	if err != nil {
		return err
	}
	header := make([]string, dim)
	for i := range header {
		header[i] = "wv_" + strconv.Itoa(i)
	}
	return datasets.WriteFeatureCSV(outfile, header, dft.FeaturizeCorpus(docs))
}

// FitDocVectors fits PV-DBOW document vectors (dimension 50, 55 epochs) over
// tokenized documents, writes one vector per document as CSV with columns
// docvec_<k>, and persists the reusable model artifact to modelFile.
func FitDocVectors(infile, outfile, modelFile string, seed int64) error {
	docs, err := LoadDocs(infile)
	if err != nil {
		return err
	}
	model, err := embed.FitDoc2Vec(docs, embed.Doc2VecConfig{Seed: seed})
	if err != nil {
		return fmt.Errorf("fitting doc vectors: %w", err)
	}
	if modelFile != "" {
		if err := model.Save(modelFile); err != nil {
			return err
		}
	}
	header := make([]string, model.Dim)
	for i := range header {
		header[i] = "docvec_" + strconv.Itoa(i)
	}
	return datasets.WriteFeatureCSV(outfile, header, model.DocVecs)
}
