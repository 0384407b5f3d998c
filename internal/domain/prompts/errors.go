package prompts

import "errors"

var (
	ErrOriginalPromptRequired = errors.New("original_prompt is required")
	ErrIDRequired             = errors.New("id is required")
)
