// Package cli implements the interactive Kamdhenuseva terminal client: a
// small REPL over the session coordinator, with an offline read path served
// from the local sqlite cache when the backend is unreachable.
package cli
