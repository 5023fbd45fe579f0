// Package div renders forms as nested <div>, <fieldset> and column markup
// driven by the form's layout tree. Fields the layout never references are
// appended after it in declaration order; hidden fields and their errors are
// hoisted to the top of the output.
//
// Output for a field:
//
//	<div class="field CharField TextInput Required"><label for="id_name">Name</label><div class="input"><input .../></div></div>
//
// Table, list and paragraph modes are deliberately unsupported; see Table,
// List and Paragraph.
package div
