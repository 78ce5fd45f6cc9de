// Package pumptest holds the numeric core of a pump test protocol: the
// sampling grid, the synthetic seed curve written into a fresh table and the
// series derived from a (possibly edited) table.
//
// All functions are pure and safe for concurrent use.
package pumptest
