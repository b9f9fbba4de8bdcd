// Package pkg provides the core libraries for Palletizer order packing.
//
// # Overview
//
// Palletizer turns invoice orders into a packing plan. Order lines are split
// into groups of mutually compatible product families, and each group runs
// through a chain of stages that place units into closed packages, bottle
// crates and generic boxes. The pkg directory is organized into three areas:
//
//  1. [core] - Domain logic (catalogs, partitioning, fit checks, stages)
//  2. [pipeline] - Orchestration (build → partition → stages → assemble)
//  3. Infrastructure - caching, configuration, errors, I/O and rendering
//
// # Architecture
//
// The typical data flow through Palletizer:
//
//	Request JSON (skus, boxes, orders, families)
//	         ↓
//	    [core/catalog] package (coerce raw records, collect diagnostics)
//	         ↓
//	    [core/family] package (drop unknown SKUs, partition by family)
//	         ↓
//	    [core/stage] package (pacote → crate → box, bridged per partition)
//	         ↓
//	    [pipeline] package (number containers, merge partitions)
//	         ↓
//	    Plan JSON
//
// # Quick Start
//
//	req, _ := io.ReadRequestFile("orders.json")
//	plan, err := pipeline.Run(ctx, req, pipeline.Options{Parallelism: 4})
//	if err != nil {
//	    return err
//	}
//	for _, id := range plan.ContainerIDs() {
//	    fmt.Println(id, plan.Origins[id].Box, plan.Caixas[id])
//	}
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/model] - SKUs, boxes, order books and container contents.
//
// [core/catalog] - Coercion of loosely typed catalog records with
// diagnostics instead of hard failures.
//
// [core/family] - Unknown SKU filtering and the family partitioner.
//
// [core/fit] - Geometric fit checks and exact weight limits.
//
// [core/binpack] - Three-dimensional bin packing for mixed boxes.
//
// [core/stage] - The packing stages and the bridge that hands leftovers from
// one stage to the next.
//
// ## Infrastructure
//
// [pipeline] - Plan orchestration used by CLI and API, plus the caching
// [pipeline.Runner].
//
// [cache] - Plan caches: file, Redis, MongoDB and a null cache.
//
// [config] - TOML configuration.
//
// [errors] - Coded errors with HTTP status mapping.
//
// [observability] - Pipeline and cache hooks.
//
// [render] - Family compatibility graph as DOT, SVG, PDF or PNG.
//
// # Testing
//
//	go test ./...                                  # All tests
//	go test -run Example ./pkg/pipeline            # Examples only
//	PALLETIZER_REDIS_ADDR=localhost:6379 go test ./pkg/cache
//
// [core]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core
// [core/model]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core/model
// [core/catalog]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core/catalog
// [core/family]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core/family
// [core/fit]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core/fit
// [core/binpack]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core/binpack
// [core/stage]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/core/stage
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/palletizer/pkg/render
package pkg
