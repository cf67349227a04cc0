// Package analysis turns completed trajectories into engineering judgments:
// scalar trajectory metrics, stability and controllability scores, flight
// performance summaries and reference-vs-damaged comparisons.
//
// The scores are intentionally the same ad hoc proxies the assessment
// workflow has always used (attitude variance, rate ranges, spectral pitch
// analysis). They are documented formulas, not modal analysis, and changing
// them would change the tool's answers.
package analysis
