package domain

import "time"

type Passage struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Answer is what the advisor returns for a question. Generated is true when
// the content came from the language model rather than the knowledge base.
type Answer struct {
	Question   string    `json:"question"`
	Content    string    `json:"content"`
	Sources    []Passage `json:"sources,omitempty"`
	Generated  bool      `json:"generated"`
	AnsweredAt time.Time `json:"answeredAt"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
