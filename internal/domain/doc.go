// Package domain contains the value types shared by every stage of the
// impact analysis pipeline: the canonical configuration tree, instance
// paths, detected changes, schema reference edges, resolved dependencies,
// and the final per-object impact report.
//
// Types in this package carry no analysis logic and are never mutated by
// the engines that consume them.
package domain
