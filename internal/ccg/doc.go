// Package ccg implements the Combinatory Categorial Grammar side of the
// compiler: categories, the rule classifier and derivation trees.
//
// A Category is either an atom such as NP or S[dcl] or a functor X/Y or
// X\Y. Functors are curried; the argument nearest the slash is consumed
// first. GetRule names the combinator that joins two child categories into
// their parent and ParseDerivation reads derivations in CCGbank AUTO format.
package ccg
