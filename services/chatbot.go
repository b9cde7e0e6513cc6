// services/chatbot.go
package services

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// Knowledge base the chatbot answers from. Questions outside this context
// get a polite redirect instead of a freeform answer.
const gorealKnowledgeBase = `GoREAL is an educational game (EduGame) project that connects the Roblox platform with real-world challenges.
Its goal is to help kids aged 8-15 grow across three pillars:
1. Wisdom: challenges that encourage creativity, logical thinking and problem solving, such as writing short stories, solving Sudoku puzzles, or basic programming.
2. Willpower: challenges that build discipline, perseverance and good habits, such as cleaning your room, waking up early, or reading every day.
3. Physical: challenges that encourage movement and health, such as running, exercising, or playing sports.`

// ChatbotClient wraps the Gemini API behind a single Ask call with the
// GoREAL knowledge base baked into the prompt.
type ChatbotClient struct {
	client *genai.Client
	model  string
}

// NewChatbotClient builds the client from GEMINI_API_KEY. Returns (nil, nil)
// when no key is set: the chatbot endpoint stays up and answers with a
// not-configured message.
func NewChatbotClient(ctx context.Context) (*ChatbotClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-pro-latest"
	}

	return &ChatbotClient{client: client, model: model}, nil
}

// Ask answers a user question as the GoREAL Helper assistant, constrained to
// the knowledge base.
func (c *ChatbotClient) Ask(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`Context: %s
---
Based on the context above, answer the following question as a friendly, enthusiastic assistant named GoREAL Helper. Keep the answer short, easy to understand, and focused on GoREAL. If the question is unrelated to the context, politely answer: "I am GoREAL's virtual assistant and can only share information about this project. Do you have another question about GoREAL?".
User question: %q
GoREAL Helper's answer:`, gorealKnowledgeBase, question)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}
	return resp.Text(), nil
}
