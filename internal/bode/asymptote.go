package bode

import "math"

// Asymptotes are the straight-line guides drawn over the exact curves.
type Asymptotes struct {
	Order     int       `json:"order"`
	LowGain   float64   `json:"low_gain"`
	HighGain  []float64 `json:"high_gain"`
	Corner    float64   `json:"corner"`
	LowPhase  float64   `json:"low_phase"`
	HighPhase float64   `json:"high_phase"`
}

// Asymptote computes the low/high frequency guides of K/(τs+1)^n over
// omega. τ = 0 yields an infinite corner and an infinite high-gain line.
func Asymptote(k, tau float64, n int, omega []float64) Asymptotes {
	high := make([]float64, len(omega))
	for i, w := range omega {
		high[i] = k / math.Pow(tau*w, float64(n))
	}
	return Asymptotes{
		Order:     n,
		LowGain:   k,
		HighGain:  high,
		Corner:    1 / tau,
		LowPhase:  0,
		HighPhase: -float64(n) * math.Pi / 2,
	}
}
