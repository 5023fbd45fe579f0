// Package layout defines the declarative tree used to arrange form fields.
// A Layout is an ordered sequence of nodes; each node is either a FieldRef
// naming a declared field or one of the containers Group, Columns and RawHTML.
// Containers render themselves through a Walker supplied by the renderer, so
// the package stays independent of any particular form implementation.
//
//	layout.Layout{
//		layout.NewGroup("Person",
//			layout.NewColumns(layout.Fields("name"), layout.Fields("email")),
//		),
//		layout.HTML("<p>We never share your address.</p>"),
//	}
package layout
