// Package caltable owns extraction of calibration rows from the
// maintained markdown document.
//
// Ownership boundary:
// - header detection and the lines-since-header state machine
// - raw row recognition (pipe counting)
// - cell parsing into chip id / frequency pairs
package caltable
