package api

import _ "embed"

//go:generate go tool oapi-codegen -generate types -package api -o api.gen.go openapi.yaml

// OpenAPISpec is the OpenAPI document served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
