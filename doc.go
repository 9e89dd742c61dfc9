package sitepage

// Package sitepage provides:
//
// - Normalization of component-type schema collections into a canonical registry
// - A site validator that checks page documents against a layout and component set
// - A composite page-schema builder for editor-time diagnostics engines
// - A stable error model via Error/Issues (kind, location, JSON Pointer sub-errors)
//
// Design policy:
// - Keep only public APIs in the root package; put the structural evaluator under internal/.
// - Place renderer capabilities under render/, document loading under loader/,
//   the serializable schema representation under jsonschema/, and the CLI under cmd/sitepage.
// - Leaf-level type checking is delegated to an external structural evaluator;
//   this package layers composition and cross-referencing logic on top.
//
// Typical usage:
//
//	v, err := sitepage.NewSiteValidator(sitepage.Options{ComponentSchemas: schemas})
//	err = v.Validate(ctx, sitepage.Request{Page: page, Layout: layout, Renderers: renderers})
//
//	composite, err := sitepage.BuildPageSchema(layout, schemas)
