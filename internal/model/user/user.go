// Package user defines the account record and its API payloads.
package user

// Table is the storage table for accounts.
const Table = "users"

// Columns are selected in this order by every query.
var Columns = []string{"id", "username", "email"}

// User is an account row.
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
}

// Response is the JSON representation of an account.
type Response struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewResponse shapes a stored user for output.
func NewResponse(u *User) *Response {
	return &Response{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// NewResponses shapes a list; an empty list encodes as [] rather than null.
func NewResponses(users []User) []Response {
	out := make([]Response, 0, len(users))
	for i := range users {
		out = append(out, *NewResponse(&users[i]))
	}
	return out
}
