package commands

import (
	"fmt"

	"github.com/pine-ai/pine-cli/pkg/cli"
	"github.com/pine-ai/pine-cli/pkg/pineassistant"
)

// renderEvent prints one realtime event in human-readable form.
func renderEvent(event *pineassistant.Event) {
	switch event.Type {
	case pineassistant.EventSessionThinking:
		cli.PrintDim("thinking...")
	case pineassistant.EventSessionText:
		fmt.Println(cli.DefaultStyles.Agent.Render("pine> ") + event.Data.Content)
	case pineassistant.EventSessionState:
		if event.Data.Content != pineassistant.StateIdle {
			cli.PrintDim("[%s]", event.Data.Content)
		}
	case pineassistant.EventSessionWorkLog:
		renderWorkLog(event.Data.Steps)
	case pineassistant.EventSessionFormToUser:
		cli.PrintWarning("The assistant needs input:")
		fmt.Println(cli.RenderPanel("", event.Data.MessageToUser))
	}
}

// renderWorkLog prints the assistant's work log steps.
func renderWorkLog(steps []pineassistant.WorkLogStep) {
	for _, step := range steps {
		mark := "·"
		if step.Status == "completed" {
			mark = "✓"
		}
		cli.PrintDim("  %s %s", mark, step.StepTitle)
		if step.StepDetails != "" {
			cli.PrintDim("      %s", step.StepDetails)
		}
	}
}

// renderHistory prints a session's past messages.
func renderHistory(messages []pineassistant.HistoryMessage) {
	for _, msg := range messages {
		switch msg.Type {
		case "session:message":
			prefix := "you> "
			if msg.Role == "assistant" {
				prefix = "pine> "
			}
			fmt.Println(prefix + msg.Content)
		case "session:text":
			fmt.Println(cli.DefaultStyles.Agent.Render("pine> ") + msg.Content)
		case "session:work_log":
			renderWorkLog(msg.Steps)
		case "session:form_to_user":
			fmt.Println(cli.RenderPanel("", msg.MessageToUser))
		}
	}
}
