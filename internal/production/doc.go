// Package production holds the compile-time meanings attached to
// derivation nodes and the algebra that combines them.
//
// A DrsProduction is a saturated DRS with the lambda referents an outer
// functor may bind. A FunctorProduction is a curried function whose scopes
// line up with the arguments of its category. Every operation returns a new
// production; operands are never modified.
package production
