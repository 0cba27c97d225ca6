// Package convert transforms matrix containers between value-equivalent
// canonical layouts: COO to CSR/CSC via stable counting sort, compressed
// transposes, hyper/sparse compaction, and densify/sparsify passes with an
// explicitly supplied fill value.
//
// Every conversion is a pure function over an immutable input: the source
// container is never modified and either a fully valid result or an error is
// returned. Counting passes are partitioned across goroutines for large
// inputs without changing observable results.
package convert
