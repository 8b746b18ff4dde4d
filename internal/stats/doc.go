// Package stats holds the fitting and model-selection helpers that sit
// next to the integrators: the Akaike information criterion, polynomial
// and straight-line least squares, a Monte Carlo estimate of line-fit
// uncertainty and a loader for whitespace-separated data files.
package stats
