package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elee1766/mcpchat/src/aisdk"
)

const defaultMaxSteps = 8

var (
	// ErrMaxStepsReached is returned when the model keeps requesting tools
	// past the configured step limit.
	ErrMaxStepsReached = errors.New("agent reached the step limit without a final answer")

	// ErrEmptyReply is returned when the model answers with neither text nor tool calls.
	ErrEmptyReply = errors.New("model returned an empty reply")
)

// Agent binds a model client and a toolbox into a reusable reasoning context.
// Each Run is an independent task: no memory is carried between runs.
type Agent struct {
	SystemPrompt string
	Model        aisdk.ModelClient
	Toolbox      *DefaultToolbox
	Logger       *slog.Logger
	MaxSteps     int
	Temperature  *float64
	MaxTokens    *int
}

// Run sends text to the model and executes requested tool calls until the
// model produces a final answer.
func (a *Agent) Run(ctx context.Context, text string) (string, error) {
	logger := a.logger()

	var messages []*aisdk.Message
	if a.SystemPrompt != "" {
		messages = append(messages, &aisdk.Message{Role: aisdk.RoleSystem, Content: a.SystemPrompt})
	}
	messages = append(messages, &aisdk.Message{Role: aisdk.RoleUser, Content: text})

	maxSteps := a.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	for step := 1; step <= maxSteps; step++ {
		reply, err := a.SendMessage(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("step %d: %w", step, err)
		}

		if len(reply.ToolCalls) == 0 {
			answer := strings.TrimSpace(reply.Content)
			if answer == "" {
				return "", ErrEmptyReply
			}
			logger.Debug("agent run finished", "steps", step)
			return answer, nil
		}

		messages = append(messages, reply)
		for i := range reply.ToolCalls {
			call := &reply.ToolCalls[i]
			messages = append(messages, a.callTool(ctx, call))
		}
	}

	return "", ErrMaxStepsReached
}

// SendMessage performs one completion over messages with the toolbox offered
// to the model, returning the assistant message.
func (a *Agent) SendMessage(ctx context.Context, messages []*aisdk.Message) (*aisdk.Message, error) {
	var chatTools []*aisdk.ChatTool
	if a.Toolbox != nil {
		chatTools = ToChatTools(a.Toolbox.Tools())
	}

	ccr := &aisdk.ChatCompletionRequest{
		Messages:    messages,
		Tools:       chatTools,
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
	}
	if len(chatTools) > 0 {
		ccr.ToolChoice = "auto"
	}

	response, err := a.Model.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	msg := response.Choices[0].Message
	msg.Role = aisdk.RoleAssistant
	return &msg, nil
}

// callTool executes one tool call. Failures are reported back to the model as
// the tool result rather than aborting the run.
func (a *Agent) callTool(ctx context.Context, call *aisdk.ToolCall) *aisdk.Message {
	result := &aisdk.Message{
		Role:       aisdk.RoleTool,
		ToolCallID: call.ID,
		Name:       call.Function.Name,
	}

	if a.Toolbox == nil {
		result.Content = fmt.Sprintf("error: tool %s is not available", call.Function.Name)
		return result
	}

	resp, err := a.Toolbox.ExecuteTool(ctx, call)
	switch {
	case err != nil:
		result.Content = "error: " + err.Error()
	case resp == nil:
		result.Content = ""
	case resp.IsError:
		result.Content = "error: " + string(resp.Content)
	default:
		result.Content = string(resp.Content)
	}
	return result
}

func (a *Agent) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
