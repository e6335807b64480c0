// Package mutation implements the copy-on-write editing operations over a
// survey.Document: inserting, updating, moving, duplicating and deleting
// elements, and adding, reordering and deleting pages.
//
// Every operation receives a document and returns a new one; the input is
// never modified. Only the path from the root to the edited sequence is
// copied, so unchanged pages and subtrees are shared between the input and
// the result. Callers must treat returned documents as immutable.
//
// Operations that cannot apply (unknown names, last-page deletion, name
// collisions) return the input document together with one of the sentinel
// errors in this package. Hosts that only care about the resulting document
// can ignore the error; IsNoop groups the sentinels.
package mutation
