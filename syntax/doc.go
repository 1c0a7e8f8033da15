// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Package syntax implements the language of program synthesis problems.

A problem names the type of a function to synthesize and a
specification that the function must satisfy, preceded by the
include clauses and declarations that it relies on:

	include "list.mls"                 // splice the declarations of list.mls
	type nat = mu n . | O | S of n     // declarations
	let zero = 0;;
	synth nat -> nat satisfying        // the type of the function
	[0] -> 1, [1] -> 2                 // its specification

A type is one of the following (where t1, t2, etc. are themselves
types):

	id                                 // a named type
	()  or  unit                       // the unit type, the empty tuple
	t1 * t2 * .. * tn                  // the type of n-tuples
	t1 -> t2                           // the type of functions from t1 to t2;
	                                   // arrows associate to the right
	mu id . t1                         // a recursive type binding id in t1
	| C1 of t1 * t2 | C2 | ..          // a variant; constructors without
	                                   // "of" take unit
	(t1)                               // parenthesized type

An expression is one of the following (where e1, e2, .. are
themselves expressions, p1, p2, .. are patterns, and t1 is a type):

	123                                // a natural number, desugared to
	                                   // S (S (.. O ()))
	id                                 // a variable
	()                                 // the unit value
	(e1, e2, .., en)                   // a tuple; (e1) is e1
	e1 e2 .. en                        // application; associates to the left
	C                                  // constructor C applied to unit
	C e1                               // constructor C applied to an
	                                   // identifier, constructor, unit or
	                                   // parenthesized expression
	Un_C e1                            // destructor: unwraps constructor C
	e1.i                               // projection of the i'th tuple element;
	                                   // f x.i projects f x
	e1 == e2  or  e1 != e2             // (dis)equality
	fun (id : t1) -> e1                // a function
	fix (id : t1) = e1                 // a fixed point
	match e1 with | p1 -> e2 | ..      // pattern matching

A pattern is one of the following:

	_                                  // match anything
	id                                 // bind id
	()                                 // match unit
	(p1, p2, .., pn)                   // match a tuple; (p1) is p1
	C p1                               // match constructor C, and its argument
	                                   // against p1
	C                                  // match constructor C with any argument

A declaration is one of the following:

	type id = t1                       // a type declaration
	let id = e1;;                      // an expression declaration

A specification is one of the following:

	[e1, .., en] -> e, ..              // input/output examples
	[e1, .., en] -> e, .. equiv e1     // examples, and a reference
	                                   // implementation e1
	e1                                 // a postcondition
	                                   // (empty) no constraints

All bytes between the delimiters "(*" and "*)" are commentary.
Comments do not nest.

Types and expressions are hash-consed: every node is created
through an Interner, which returns a single shared representative
for each distinct structure. Within one interner, structural
equality is pointer equality.
*/
package syntax
