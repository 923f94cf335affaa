// Package poolservice implements the pool resource allocation engine inside
// the resource-sharing context.
//
// The module owns the pool inventory ledger, the contribution review
// workflow that credits it, and the distribution paths that debit it: a
// direct single-recipient grant and a mass distribution driven by a pure
// allocation planner (full, partial, equal strategies). Preview and commit
// share one allocator, and the committer re-runs it under the ledger's
// serialization scope so concurrent distributions never oversell. Business
// rules live in the domain/application layers behind ports and adapters.
package poolservice
