// Package post defines the post record and its API payloads.
package post

// Table is the storage table for posts.
const Table = "posts"

// Columns are selected in this order by every query.
var Columns = []string{"id", "title", "content", "owner_id"}

// Post is a post row. OwnerID is nullable in the schema even though the API
// always sets it.
type Post struct {
	ID      int64  `db:"id"`
	Title   string `db:"title"`
	Content string `db:"content"`
	OwnerID *int64 `db:"owner_id"`
}

// Response is the JSON representation of a post.
type Response struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	OwnerID *int64 `json:"owner_id"`
}

func NewResponse(p *Post) *Response {
	return &Response{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		OwnerID: p.OwnerID,
	}
}

func NewResponses(posts []Post) []Response {
	out := make([]Response, 0, len(posts))
	for i := range posts {
		out = append(out, *NewResponse(&posts[i]))
	}
	return out
}
