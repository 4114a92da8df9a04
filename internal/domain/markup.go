package domain

import (
	"encoding/json"
	"strings"
)

// MarkupNode is a node of the platform's rich-text document tree.
type MarkupNode struct {
	Type    string       `json:"type"`
	Text    string       `json:"text,omitempty"`
	Content []MarkupNode `json:"content,omitempty"`
}

// TextDocument wraps text in a single paragraph. Empty text gives an empty
// paragraph, since text nodes must not be empty.
func TextDocument(text string) MarkupNode {
	if text == "" {
		return MarkupNode{Type: "doc", Content: []MarkupNode{{Type: "paragraph"}}}
	}
	return MarkupNode{
		Type: "doc",
		Content: []MarkupNode{{
			Type:    "paragraph",
			Content: []MarkupNode{{Type: "text", Text: text}},
		}},
	}
}

// PlainText flattens a serialized document into text, one line per block.
// Input that is not a JSON document is returned trimmed as-is.
func PlainText(message string) string {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	var root MarkupNode
	if err := json.Unmarshal([]byte(trimmed), &root); err != nil || root.Type == "" {
		return trimmed
	}

	var lines []string
	var current strings.Builder
	var walk func(node MarkupNode)
	walk = func(node MarkupNode) {
		if node.Type == "text" {
			current.WriteString(node.Text)
			return
		}
		for _, child := range node.Content {
			walk(child)
		}
		if node.Type == "paragraph" || node.Type == "heading" || node.Type == "hardBreak" {
			lines = append(lines, current.String())
			current.Reset()
		}
	}
	walk(root)
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
