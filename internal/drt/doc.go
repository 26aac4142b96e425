// Package drt implements Discourse Representation Structures.
//
// A DRS is a tree of boxes. Each box holds a universe of referents and a
// list of conditions; conditions may hold further boxes. Every expression
// keeps a non-owning pointer to its enclosing expression, which defines
// accessibility:
//   - a box nested in a condition points at the box holding the condition
//   - the consequent of an implication points at its antecedent
//   - the two sides of a disjunction both point at the enclosing box
//
// Expressions are treated as immutable once built. Every transformation
// (AlphaConvert, Substitute, Purify, MergeDRS, ResolveMerges) returns a new
// tree with its parent pointers rebuilt by the constructors.
package drt
