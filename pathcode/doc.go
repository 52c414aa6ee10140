// Package pathcode turns a flat list of (parent, concept) relations into a
// table of hierarchical path identifiers.
//
// What:
//
//   - Every concept gets a Token: its 0-based position among the children of
//     its parent, written as "1" followed by that many zeros ("1", "10",
//     "100", …). A token is decoded by counting its trailing zeros.
//   - A concept's Path is its own token prepended to its parent's path, so a
//     path is read leaf first and its last token belongs to a root.
//   - Names used as a parent but never as a concept become synthesized roots.
//
// Because every token starts with the only "1" it contains, a path splits
// back into tokens at each "1", which makes paths unique and lets the
// parent's path be recovered by stripping the leading token.
//
// Build is two steps: collect rows (dedupe, synthesize roots, assign tokens),
// then resolve paths by repeated passes until every row has one. A pass that
// resolves nothing means a parent cycle, reported as ErrCycleOrUnknownParent.
//
// Complexity:
//
//   - Build: O(P·N) worst case for N rows and P resolution passes (P ≤ depth),
//     plus O(N·L) for the suffix index, L = longest path.
//
// Errors:
//
//   - ErrEmptyConcept: a relation without a concept name.
//   - ErrCycleOrUnknownParent: some rows can never be resolved.
//   - ErrPathCollision: two rows ended up with the same path.
//   - ErrInvalidToken: text that is not "1" followed by zeros.
//   - ErrOptionViolation: an invalid Option.
package pathcode
