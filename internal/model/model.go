// Package model holds the storage entities and the request/response
// payloads of the API, one sub-package per resource.
package model

// DeleteResponse is the JSON confirmation returned by delete endpoints.
type DeleteResponse struct {
	Detail string `json:"detail"`
}
