// Package validation binds request data and checks it.
//
// Payloads declare their rules as go-playground/validator struct tags
// (required, max length) and expose them through Validatable. Binding and
// rule failures both come back as a 400 *errs.HTTPError whose per-field
// errors use the JSON field names.
package validation
