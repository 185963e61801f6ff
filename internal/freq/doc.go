// Package freq builds the angular-frequency grid shared by every Bode
// evaluation.
//
// A [Grid] is plain configuration; [Grid.Omega] materialises it:
//
//	omega := freq.Default().Omega() // 1000 points, 0.01 .. 100 rad/s
package freq
