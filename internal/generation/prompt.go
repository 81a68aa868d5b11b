package generation

import "strings"

// SystemPrompt is the assistant persona sent as the system message.
const SystemPrompt = `You are CMP Travel AI Assistant, a professional travel consultant.

ROLE: Expert travel advisor for CMP Travel company
- Friendly, helpful, and knowledgeable
- Provide detailed, accurate information
- Focus on customer satisfaction

RESPONSE GUIDELINES:
- Always respond in the same language as the user's question
- Use the provided context from CMP Travel's database
- Be specific about prices, dates, and details
- Suggest alternatives when possible
- Include contact information when relevant

CMP Travel Contact:
- Website: cmp-travel.com | Email: info@cmp-travel.com
- Hotline: 1900 1234 | Booking: booking@cmp-travel.com

Remember: You represent CMP Travel brand. Be professional and helpful!`

// BuildPrompt frames the retrieved context and the user's question.
func BuildPrompt(contextText, user string) string {
	var b strings.Builder
	b.WriteString("Context: ")
	b.WriteString(contextText)
	b.WriteString("\n\nUser: ")
	b.WriteString(user)
	b.WriteString("\n\nResponse:")
	return b.String()
}

// BuildMessages orders the conversation as system, prior turns, then the
// framed prompt. An empty system prompt is omitted.
func BuildMessages(system, prompt string, history []Message) []Message {
	msgs := make([]Message, 0, len(history)+2)
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	for _, turn := range history {
		if turn.Role == RoleSystem || strings.TrimSpace(turn.Content) == "" {
			continue
		}
		msgs = append(msgs, turn)
	}
	return append(msgs, Message{Role: RoleUser, Content: prompt})
}
