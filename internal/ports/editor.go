package ports

import "context"

// ContentEditor lets the user edit text in an external program
type ContentEditor interface {
	// Edit presents content for editing and returns the edited text.
	// name is a hint used for the temporary file name.
	Edit(ctx context.Context, name, content string) (string, error)
}
