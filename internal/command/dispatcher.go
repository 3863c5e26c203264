package command

import (
	"context"
	"strings"

	"github.com/kapu/meal-browser-go/internal/domain"
)

// NormalizeFunc converts a client message into the registry key and the
// message passed to the handler.
type NormalizeFunc func(*domain.ClientMessage) (string, *domain.ClientMessage)

type sequentialDispatcher struct {
	registry  *Registry
	normalize NormalizeFunc
}

// NewSequentialDispatcher creates a dispatcher that executes messages in the
// order they are received. A nil normalize uses NormalizeMessage.
func NewSequentialDispatcher(registry *Registry, normalize NormalizeFunc) Dispatcher {
	if normalize == nil {
		normalize = NormalizeMessage
	}
	return &sequentialDispatcher{registry: registry, normalize: normalize}
}

func (d *sequentialDispatcher) Publish(ctx context.Context, msgs ...*domain.ClientMessage) (int, error) {
	if d == nil || d.registry == nil {
		return 0, nil
	}

	executed := 0
	for _, msg := range msgs {
		if msg == nil || strings.TrimSpace(msg.Action) == "" {
			continue
		}

		key, normalized := d.normalize(cloneMessage(msg))
		if err := d.registry.Execute(ctx, key, normalized); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}

// NormalizeMessage trims and lowercases the action name. Arguments are kept
// verbatim since search terms are significant.
func NormalizeMessage(msg *domain.ClientMessage) (string, *domain.ClientMessage) {
	msg.Action = strings.ToLower(strings.TrimSpace(msg.Action))
	return msg.Action, msg
}

func cloneMessage(src *domain.ClientMessage) *domain.ClientMessage {
	clone := *src
	if len(src.Values) > 0 {
		clone.Values = make(map[string]string, len(src.Values))
		for k, v := range src.Values {
			clone.Values[k] = v
		}
	}
	return &clone
}
