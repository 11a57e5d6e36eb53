package models

// Todo mirrors the wire format of the backing service:
// {"id": 1, "todo": "...", "completed": false, "userId": 1}.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"userId"`
}
