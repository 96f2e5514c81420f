package service

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
)

// DestinationChooser asks the user to pick one of several webhooks.
// DestinationChooser 交互式选择 webhook
type DestinationChooser interface {
	// Choose returns the index of the chosen destination.
	Choose(ctx context.Context, destinations []domain.WebhookDestination) (int, error)
}

// ShareTarget 非交互式指定分享目标
type ShareTarget struct {
	// Webhook 按描述选择 webhook（忽略大小写）
	Webhook string
	// All 发送到全部 webhook
	All bool
}

// sameDescription compares webhook descriptions case-insensitively.
func sameDescription(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

// SelectDestinations applies the destination policy: none configured is an
// error, an explicit target is honoured, a single destination is used without
// asking, and two or more go to the chooser.
// SelectDestinations 根据配置与目标选择 webhook
func SelectDestinations(ctx context.Context, s *domain.Settings, target ShareTarget, chooser DestinationChooser) ([]domain.WebhookDestination, error) {
	if !s.HasDestinations() {
		return nil, code.ErrorNoDestination
	}
	all := s.Webhooks

	if target.All {
		return append([]domain.WebhookDestination(nil), all...), nil
	}

	if target.Webhook != "" {
		for _, d := range all {
			if sameDescription(d.Description, target.Webhook) {
				return []domain.WebhookDestination{d}, nil
			}
		}
		return nil, code.ErrorDestinationUnknown.WithArgs(target.Webhook)
	}

	if len(all) == 1 {
		return []domain.WebhookDestination{all[0]}, nil
	}

	if chooser == nil {
		return nil, code.ErrorInvalidParams.WithDetails("several webhooks configured, pick one with --webhook or --all")
	}
	i, err := chooser.Choose(ctx, all)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(all) {
		return nil, code.ErrorCanceled
	}
	return []domain.WebhookDestination{all[i]}, nil
}
