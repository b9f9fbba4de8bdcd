// Package io reads packing requests and writes plans as JSON.
//
// # Request Format
//
// A request has four top-level members:
//
//	{
//	  "skus": {
//	    "wine": {"height": 30, "width": 9, "length": 9, "gross_weight": 1.2,
//	             "units_per_closed_package": 6, "is_bottle": 1, "family_id": 3}
//	  },
//	  "boxes": {
//	    "rack":   {"height": 35, "width": 30, "length": 30, "slot_count": 9, "slot_diameter": 10.4},
//	    "carton": {"height": 40, "width": 30, "length": 30}
//	  },
//	  "orders": {
//	    "inv-001": {"wine": 20}
//	  },
//	  "families": [
//	    {"family_id": 3, "incompatible_family_ids": []}
//	  ]
//	}
//
// Catalog values are kept as decoded (numbers are preserved as
// [encoding/json.Number]) and coerced later by the catalog package, so a
// malformed field never fails decoding. Only a document that is not valid
// JSON, or whose members have the wrong shape, is rejected with
// [errors.ErrCodeInvalidInput].
//
// # Plan Format
//
// [WritePlan] writes the plan indented, with container ids as object keys:
//
//	{
//	  "run_id": "…",
//	  "pacotes": {"soap": 24},
//	  "caixas": {"1": {"wine": 9}, "2": {"wine": 9}},
//	  "not_palletized": {"ghost": 4},
//	  "stats": {…}
//	}
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/palletizer/pkg/errors.ErrCodeInvalidInput
package io
