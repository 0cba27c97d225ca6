// Package binsparse stores sparse and dense multi-dimensional arrays as a
// small set of named one-dimensional buffers plus one attribute document.
//
// A container is described axis by axis: each axis either materializes a
// pointer buffer, an index buffer, both, or neither, and the combination
// determines the storage scheme (CSR, COO, dense and friends fall out as
// special cases). The matrix package validates descriptors and recognizes
// canonical formats, the convert package rewrites containers between
// formats, and the datastore package moves the named buffers to and from
// storage backends.
//
// Save and Load at the root tie these together: they map a matrix.Matrix
// onto named arrays under a caller-chosen name and back, with the attribute
// document carrying everything the buffers do not.
package binsparse
