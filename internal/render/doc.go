// Package render draws Bode figures with gonum/plot: a log-log magnitude
// panel, a log-x phase panel and, for the second-order family, a pole map.
package render
