// Package openapi builds form definitions from OpenAPI 3 component schemas
// and operation request bodies. Property order follows the
// x-formlayout-order extension, then property name; x-formlayout-layout
// carries a layout in the same shape form documents use.
package openapi
