// Package ldgraph ingests a constrained JSON-LD dialect into an in-memory graph
// of nodes keyed by @id.
//
// - Classification of decoded values by kind (node, reference, value, list, set, graph)
// - A post-order walker with per-kind handlers and an ancestor trail
// - A validating Parser that stages nodes and collects path-located diagnostics
// - An all-or-nothing Corpus, a Linker for inverse properties and @reverse blocks
// - A read-only, reference-resolving GraphView
//
// Design policy:
// - Keep only public APIs in the root package; put token-level decoding under internal/.
// - Place input drivers under source/ and the CLI under cmd/ldgraph.
// - Contract violations are returned as *Error; document defects accumulate as Diagnostics.
//
// Typical usage:
//
//	c := ldgraph.NewCorpus()
//	if err := c.IngestJSON(data); err != nil {
//		if ds, ok := ldgraph.AsDiagnostics(err); ok {
//			// inspect ds
//		}
//	}
//	_, _ = c.Link()
//	v := c.Graph().Node("https://example.com/a")
package ldgraph
