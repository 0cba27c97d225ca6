// Package matrix implements the axis-encoding model at the heart of the
// interchange format: per-axis storage primitives (Sparse, Hyper, Index,
// Full), the five structural rules constraining their combination, the
// canonical format recognizer, and the rank-N container that owns the
// buffers.
//
// The format of a container is never stored; it is derived from which
// buffers each axis carries. Classify validates a kind sequence against the
// structural rules and Recognize names the layouts everyone knows (COO, CSR,
// CSC, DCSR, DCSC, dense, index-full). Valid but unnamed sequences are
// first-class citizens reported as FormatCustom.
package matrix
