// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package datavalues exposes Go values and data documents (JSON, YAML, TOML
and Starlark) to templates as template.Context values.

Decoded documents keep the key order of their source (see package
orderedmap), so looping over a record follows the document. Go maps are
looped over in sorted key order and structs in field order.

Struct fields can be configured with the `tenjin` tag:

	type Page struct {
		Title  string                   // { page.Title }
		Author string `tenjin:"author"` // { page.author }
		Body   string `tenjin:",raw"`   // injected without escaping
		Notes  string `tenjin:",sanitize"`
		secret string                   // unexported fields are never visible
		Cache  []byte `tenjin:"-"`
	}
*/
package datavalues
