// Package rehearsal implements the record edit workflow: selection sets
// with snapshot/diff semantics, the edit session that loads a rehearsal
// with its roster and piece catalog and saves a minimal partial update,
// and the proposer for new rehearsal names.
package rehearsal
