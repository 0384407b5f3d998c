package ai

// BlockKind enumerates the content block variants a model reply can carry.
type BlockKind string

const (
	BlockText    BlockKind = "text"
	BlockImage   BlockKind = "image_url"
	BlockRefusal BlockKind = "refusal"
)

// ContentBlock is one tagged part of a model reply. Text holds the text for
// BlockText and BlockRefusal, URL holds the reference for BlockImage.
type ContentBlock struct {
	Kind BlockKind
	Text string
	URL  string
}

type Reply struct {
	Blocks []ContentBlock
}

// FirstText returns the text of the first BlockText block, or "" if none.
func (r Reply) FirstText() string {
	for _, b := range r.Blocks {
		if b.Kind == BlockText {
			return b.Text
		}
	}
	return ""
}
