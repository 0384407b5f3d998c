package prompts

import "time"

// RecordID identifier type
type RecordID string

// Record is one saved analysis result plus the optional user edit.
// ImageURL and EditedPrompt are nil when absent.
type Record struct {
	ID             RecordID  `json:"id"`
	ImageURL       *string   `json:"image_url"`
	OriginalPrompt string    `json:"original_prompt"`
	EditedPrompt   *string   `json:"edited_prompt"`
	CreatedAt      time.Time `json:"created_at"`
}
