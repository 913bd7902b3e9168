// Package api содержит встроенную OpenAPI-спецификацию, отдаваемую роутером
// по /swagger/openapi.json.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
