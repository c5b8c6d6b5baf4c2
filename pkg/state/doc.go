// Package state defines persistence-facing contracts for loading and saving
// named documents per scope, plus a resolver that layers them.
//
//   - Store only loads and saves a single container for a single Ref.
//   - Resolver.Resolve loads one document name across a layering.ScopeChain
//     and merges the results strongest first into a *dotpath.Document.
//   - Resolver.Mutate is a load, edit, save cycle guarded by ETags.
//
// Data flow:
//
//	Store -> Resolver -> layering.MergeLayers(...) -> *dotpath.Document
//
// Deterministic keys:
//
//	Ref.Identifier() yields "global/<name>", "group/<owner>/<name>" or
//	"user/<owner>/<name>". Adapters should use it as their storage key.
package state
