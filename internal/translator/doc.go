// Package translator converts natural-language questions into validated
// Cypher queries using the completion contract.
//
// The prompt is deterministic: it embeds the live schema description and a
// fixed instruction set, so the only variance between calls is the question
// itself. Raw model output never reaches the store - it passes a surface
// validator (clause whitelist, read-only check, mandatory content
// projection) first, and an unparseable attempt gets exactly one retry with
// parse feedback before the failure surfaces.
package translator
