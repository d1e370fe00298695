// Package crosspred facilitates cross-validation for an arbitrary learner.
// It computes stratified folds over a grouped dataset, fits one learner per
// (fold, essay set) combination, and gathers the predictions on each
// hold-out set. It does not do any evaluation of those predictions.
//
// Folds are computed once at construction from an explicit seed, so repeated
// runs over the same data produce identical partitions. Construction also
// runs a structural sanity check over the partition (see AnalyzeStructure)
// and fails if the split is degenerate.
package crosspred
