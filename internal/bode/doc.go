// Package bode turns transfer-function parameters into everything a Bode
// diagram shows.
//
//   - [Evaluate]: response, magnitude and unwrapped phase over a grid
//   - [Asymptote]: low/high frequency gain and phase guides, corner 1/τ
//   - [Roots], [SecondOrderPoles]: companion-matrix root finding
//   - [DelayPhase]: exact phase line of a dead time
//
// # Example
//
//	res, _ := bode.Evaluate(tf.Params{Kind: tf.KindRealPole, K: 1, Tau: 1, N: 1}, freq.Default())
//	corner := res.Asymptotes.Corner // 1 rad/s
//
// Evaluation is a pure function of its inputs. Degenerate parameters such as
// τ = 0 are not rejected; they show up as Inf or NaN in the result.
package bode
