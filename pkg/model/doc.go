// Package model declares the forms the layout renderers walk. A Definition
// holds an ordered list of Field declarations plus an optional layout tree;
// binding a Definition to submitted data and error messages yields a Form,
// which satisfies render.Form.
//
//	contact := model.NewBuilder("contact").
//		Fields(
//			model.CharField("name", model.WithLabel("Name")),
//			model.EmailField("email", model.Optional()),
//		).
//		Layout(layout.NewColumns(layout.Fields("name"), layout.Fields("email"))).
//		MustBuild()
//
//	form := contact.Bind(model.WithData(values), model.WithErrors(errs))
//
// Definitions are immutable once built and can be bound concurrently.
package model
