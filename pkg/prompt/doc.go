// Package prompt collects field values for a form definition interactively.
// Fields are asked in layout order; the answers are keyed by field name and
// can be bound with model.WithData. The terminal implementation uses survey;
// tests and alternative front ends supply their own Driver.
package prompt
