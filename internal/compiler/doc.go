// Package compiler turns CCG derivations into Discourse Representation
// Structures.
//
// The compiler walks a derivation bottom up. Each leaf gets a lexical
// production built from its category and part of speech; each internal node
// names its combinatory rule with ccg.GetRule and combines the children with
// the matching production operation.
//
// # Lexical Templates
//
// A functor category is co-indexed atom by atom: atoms that denote the same
// entity share a referent. Modifiers, determiners and auxiliaries reuse the
// referents of their argument, type-raised categories link T|(T|X), and
// relative pronouns bind the clause's subject to the modified noun phrase.
// The word then contributes conditions over those referents:
//
//	(S[b]\NP)/PP  Welcome  λx2.λx1.[e1| event(e1),event.verb.welcome(e1),event.agent(e1,x2),event.theme(e1,x1)]
//	PP/NP         to       λx1.[x2| to(x2,x1)]
//	N/N           big      λx1.[| big(x1)]
//
// # Finishing
//
// A result still waiting for a left argument, as in imperatives, receives
// an empty noun phrase. The final production must reduce to a proper and
// pure DRS over an atomic category; its variables are then renumbered in
// order of first occurrence.
//
// # Errors
//
// Every failure is a *CompileError whose Kind names the failure class and
// whose Category and Word point at the offending node.
package compiler
