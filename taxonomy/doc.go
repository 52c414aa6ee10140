// Package taxonomy reads (parent, concept) relations from the document
// formats taxonomies are usually kept in.
//
//   - CSV: a header naming "parent" and "concept" columns in any order, or
//     headerless rows whose first two cells are parent and concept.
//   - Markdown: nested bullet lists, one concept per item. Headings act as
//     outer levels, so items under "## Art" have Art as their parent.
//   - HTML: nested <ul>/<ol> lists, with h1–h6 as outer levels.
//   - JSON: an array of {"parent", "concept"} objects, or an object holding
//     that array under "relations".
//
// ForFile picks a reader by file extension. Readers keep document order,
// which is what fixes sibling positions once the relations are encoded;
// Shuffle reorders them reproducibly when a random sibling order is wanted.
package taxonomy
