// Package formschema loads form definitions from JSON or YAML documents. A
// document declares one or more named forms, each with an ordered field list
// and an optional layout tree:
//
//	forms:
//	  contact:
//	    fields:
//	      - {name: name, type: CharField, label: Name}
//	      - {name: token, type: CharField, widget: HiddenInput}
//	    layout:
//	      - group: Person
//	        children:
//	          - columns: [[name], [email]]
//	            class: yui-gc
//	      - html: "<p>Thanks</p>"
//
// A form may name another form in `extends` to inherit its fields and
// layout. Raw `html` nodes are sanitised unless the loader trusts them.
package formschema
