package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/domain"
	"hotel_qa/internal/tools"
)

const systemPrompt = "You are a hotel question-answering assistant. You can " +
	"answer questions about hotels in a fixed dataset with these fields: city, " +
	"country, star_rating, cleanliness, comfort, facilities. Use the " +
	"search_hotels tool to look up hotels; do not invent hotels that the tool " +
	"did not return. If the tool reports no matches, say so plainly."

// keep transcripts bounded; old turns fall off the front (the system prompt
// is re-prepended each turn and never stored)
const maxHistoryMessages = 40

// Agent runs one conversational turn: call the model, execute any requested
// tool calls, feed results back, repeat until the model answers in text.
type Agent struct {
	model     domain.ChatModel
	history   domain.HistoryStore
	tools     []*tools.Tool
	maxRounds int
}

func NewAgent(model domain.ChatModel, history domain.HistoryStore, ts []*tools.Tool, maxRounds int) *Agent {
	if maxRounds <= 0 {
		maxRounds = 4
	}
	return &Agent{model: model, history: history, tools: ts, maxRounds: maxRounds}
}

func (a *Agent) Turn(ctx context.Context, sessionID, userMessage string) (string, error) {
	past, err := a.history.Load(ctx, sessionID)
	if err != nil {
		// degraded but serviceable: answer without prior context
		log.Warn().Err(err).Str("session", sessionID).Msg("history load failed")
		past = nil
	}

	messages := make([]domain.Message, 0, len(past)+2)
	messages = append(messages, domain.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, past...)
	messages = append(messages, domain.Message{Role: "user", Content: userMessage})

	specs := tools.Specs(a.tools)

	var reply string
	for round := 0; ; round++ {
		res, err := a.model.Chat(ctx, messages, specs)
		if err != nil {
			return "", err
		}
		if len(res.ToolCalls) == 0 {
			reply = res.Content
			break
		}
		if round >= a.maxRounds {
			log.Warn().Str("session", sessionID).Int("rounds", round).Msg("tool round limit reached")
			reply = res.Content
			if strings.TrimSpace(reply) == "" {
				reply = "Sorry, I could not finish answering that. Please try rephrasing your question."
			}
			break
		}

		messages = append(messages, domain.Message{Role: "assistant", Content: res.Content, ToolCalls: res.ToolCalls})
		for _, tc := range res.ToolCalls {
			messages = append(messages, domain.Message{
				Role:       "tool",
				Content:    a.execute(ctx, tc),
				ToolCallID: tc.ID,
			})
		}
	}

	a.save(ctx, sessionID, past, userMessage, reply)
	return reply, nil
}

// execute runs one tool call. Failures are reported back to the model as tool
// output so a bad call never ends the conversation.
func (a *Agent) execute(ctx context.Context, tc domain.ToolCall) string {
	t := tools.Find(a.tools, tc.Function.Name)
	if t == nil {
		observability.ObserveTool(tc.Function.Name, "error")
		return "unknown tool: " + tc.Function.Name
	}
	out, err := t.Execute(ctx, tc.Function.Arguments)
	if err != nil {
		observability.ObserveTool(t.Name, "error")
		log.Error().Err(err).Str("tool", t.Name).Msg("tool execution failed")
		return "tool failed: " + err.Error()
	}
	if strings.HasPrefix(out, "No hotels found") {
		observability.ObserveTool(t.Name, "empty")
	} else {
		observability.ObserveTool(t.Name, "ok")
	}
	return out
}

func (a *Agent) save(ctx context.Context, sessionID string, past []domain.Message, userMessage, reply string) {
	msgs := append(past,
		domain.Message{Role: "user", Content: userMessage},
		domain.Message{Role: "assistant", Content: reply},
	)
	if len(msgs) > maxHistoryMessages {
		msgs = msgs[len(msgs)-maxHistoryMessages:]
	}
	if err := a.history.Save(ctx, sessionID, msgs); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("history save failed")
	}
}
