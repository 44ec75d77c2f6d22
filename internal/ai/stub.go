package ai

import (
	"context"
	"fmt"
	"strings"
)

// StubGenerator is a deterministic Generator used when no API key is
// configured. It lets the ai-generated pipeline run end to end in tests and
// offline setups.
type StubGenerator struct{}

func (StubGenerator) GenerateThread(_ context.Context, topic, persona string) (string, string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "an argument nobody asked for"
	}
	title := fmt.Sprintf("The internet cannot agree about %s", topic)
	body := strings.Join([]string{
		fmt.Sprintf("It started, as these things do, with a single post about %s.", topic),
		"Within the hour the replies had split into two camps, each absolutely certain the other had lost the plot.",
		fmt.Sprintf("By evening %s had weighed in, screenshots were circulating, and the original poster had gone quiet.", personaOrDefault(persona)),
	}, "\n\n")
	return title, body, nil
}
