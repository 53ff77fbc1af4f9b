package dialogue

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/transcript-genie/internal/llm"
	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

const conversationPrompt = `Create an engaging conversational summary of the following text as a natural dialogue between Alice and Bob.
Requirements:
1. Format each line as 'Speaker: Dialogue' (MUST start every line with either 'Alice:' or 'Bob:')
2. Make it feel like a real conversation, not just Q&A
3. Both speakers should contribute insights and knowledge
4. Include reactions and follow-up questions
5. Keep the technical accuracy of the original content
6. Use natural language and conversational tone
7. Maintain equal participation from both speakers
8. Add natural transitions between topics
9. Keep each speaker's style consistent

Here's the text to summarize in a conversation:
%s

Remember: Every single line MUST start with either 'Alice:' or 'Bob:' for proper audio processing.`

type Generator struct {
	gen    llm.Generator
	logger logger.Logger
}

func NewGenerator(gen llm.Generator, log logger.Logger) *Generator {
	return &Generator{gen: gen, logger: log}
}

// Generate asks the model for a two-speaker script and returns the filtered
// conversation. Lines that fail the speaker allow-list are dropped, not fixed.
func (g *Generator) Generate(ctx context.Context, text string) (Script, error) {
	raw, err := g.gen.GenerateText(ctx, fmt.Sprintf(conversationPrompt, text))
	if err != nil {
		return nil, err
	}

	script, discards := ParseScript(raw)
	if len(discards) > 0 {
		g.logger.Debug(ctx, "Dropped %d malformed dialogue lines", len(discards))
	}
	if len(script) == 0 {
		return nil, &llm.GenerationError{Err: fmt.Errorf("model produced no usable dialogue lines")}
	}

	g.logger.Info(ctx, "Generated dialogue: %d lines", len(script))
	return script, nil
}
