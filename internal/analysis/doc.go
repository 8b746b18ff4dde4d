// Package analysis provides chaos and dynamics analysis tools built on the
// integrators and on one-dimensional iterated maps.
//
//   - [LogisticLyapunov], [LyapunovSweep]: Lyapunov exponent of the logistic map
//   - [LyapunovExponent]: largest exponent of a flow via trajectory separation
//   - [Bifurcation]: orbit diagram of an iterated [Map]
//   - [PoincareSection]: stroboscopic section of a periodically driven system
//   - [PhasePortrait]: 2D phase space view of a trajectory
//   - [DominantFrequency], [PowerSpectrum]: spectra via go-dsp
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(integrators.NewRK4(f), y0, 0.01, 100, 1e-8)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
