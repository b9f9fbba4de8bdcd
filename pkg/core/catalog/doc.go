// Package catalog turns raw ingested records into typed SKU and box catalogs,
// order books and family compatibility rules.
//
// Every numeric field is coerced defensively: a missing, non-numeric or
// non-positive value never aborts a run. It is replaced by a sentinel
// ([model.InvalidMeasure], [model.DefaultUnits] or false for is_bottle) and a
// [Diagnostic] is returned alongside the catalog. The sentinels, together with
// the validity flags on [model.Sku], make the affected SKU fail every later fit
// and capacity check.
//
// Parsing walks records in ascending id order, so diagnostics are reported in
// a stable order for identical input.
package catalog
