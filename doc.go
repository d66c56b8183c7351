// Package premierleague analyses Premier League 2023/24 team-match
// statistics to predict the total goals scored in a match.
//
// The analysis is a single batch run: load the match table (downloading it
// on first use), derive the total-goals and total-expected-goals columns,
// split the rows 90/10 stratified on the target, fit a bank of ordinary
// least squares models over different feature subsets plus one ridge model
// whose penalty is chosen by 10-fold cross-validation, and report the
// root-mean-square error of every candidate. Only the final ridge model is
// scored on the holdout rows.
//
// # Packages
//
//   - dataset: match rows, CSV loading with a local cache, validation
//   - split: stratified holdout split and k-fold assignment
//   - linear: ordinary least squares, ridge, and cross-validated ridge
//   - preprocessing: feature standardization for the ridge penalty
//   - metrics: RMSE and friends
//   - report: the comparison table and its bar-chart rendering
//   - pipeline: configuration and the end-to-end run
//
// Run the analysis with:
//
//	go run ./cmd/goalsreport
package premierleague
