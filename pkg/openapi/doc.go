// Package openapi builds form trees from the request body schema of an
// OpenAPI 3 operation. Documents are loaded from files, an fs.FS or HTTP and
// parsed with kin-openapi.
package openapi
