// Package builder assembles pages from an ordered pipeline of build steps.
//
// Each step receives the Document produced by the previous one. Steps are
// identified by id so later steps can be positioned relative to earlier ones:
//
//	b := builder.New(builder.WithTitle("Home"))
//	hero := b.AddRenderFunction(builder.Func(addHero))
//	b.TryAddRenderFunctionAfterFuncID(builder.Func(addFeatures), hero)
//	html, ok := b.BuildAsString()
//
// Every Build starts from a freshly seeded Document, so building twice yields
// identical output.
package builder
