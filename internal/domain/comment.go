package domain

// Comment is a note left on a task. Comments cannot be edited or deleted.
type Comment struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// CommentInput is the body of a create request.
type CommentInput struct {
	Body string `json:"body"`
}

// Normalize trims the body and checks it is present.
func (in *CommentInput) Normalize() error {
	body, err := RequireText("body", in.Body)
	if err != nil {
		return err
	}
	in.Body = body
	return nil
}
