package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
	"github.com/haierkeys/note-discord-share/pkg/validator"
)

func newTestSettingService(t *testing.T, raw map[string]any) (SettingService, *fakeSettingsRepo) {
	t.Helper()
	v, err := validator.New()
	require.NoError(t, err)
	repo := &fakeSettingsRepo{raw: raw}
	return NewSettingService(repo, v, nil), repo
}

func TestSettingService_InitialWhenMissing(t *testing.T) {
	svc, repo := newTestSettingService(t, nil)

	s, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.InitialSettings(), s)
	assert.Zero(t, repo.saves, "reading never creates the file")
}

func TestSettingService_MigratesLegacyOnLoad(t *testing.T) {
	svc, repo := newTestSettingService(t, map[string]any{
		"discordWebhookURL":       "https://discord.com/api/webhooks/1/a",
		"attachmentsFolder":       "files",
		"showPreviewInLocalModal": false,
		"localSuggestionsLimit":   float64(5),
		"embedTitle":              "title-key",
		"embedColor":              "#ff0000",
	})

	s, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SettingsVersion, s.Version)
	assert.Equal(t, []domain.WebhookDestination{{Description: "Default", URL: "https://discord.com/api/webhooks/1/a"}}, s.Webhooks)
	assert.Equal(t, "files", s.AttachmentsFolder)
	assert.False(t, s.ShowPreview)
	assert.Equal(t, 5, s.LocalSuggestionsLimit)
	assert.Equal(t, "title-key", s.Overrides.Title)
	assert.Equal(t, "#ff0000", s.Defaults.Color)
	assert.Equal(t, domain.DefaultAttachmentFormats, s.AttachmentFormats)
	assert.NotNil(t, s.Defaults.Fields)

	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, domain.SettingsVersion, repo.raw["version"])
	assert.NotContains(t, repo.raw, "embedTitle")
}

func TestSettingService_CurrentVersionNotRewritten(t *testing.T) {
	svc, repo := newTestSettingService(t, map[string]any{
		"version":           domain.SettingsVersion,
		"discordWebhookURL": []any{map[string]any{"description": "main", "url": "https://discord.com/api/webhooks/1/a"}},
	})

	s, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Webhooks, 1)
	assert.True(t, s.ShowPreview, "initial value backfilled")
	assert.Equal(t, 10, s.LocalSuggestionsLimit)
	assert.Zero(t, repo.saves)
}

func TestSettingService_SnapshotIsolation(t *testing.T) {
	svc, _ := newTestSettingService(t, nil)
	ctx := context.Background()

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.AddWebhook(ctx, "main", "https://discord.com/api/webhooks/1/a"))

	assert.Empty(t, snap.Webhooks, "earlier snapshot is unaffected by edits")

	snap.Webhooks = append(snap.Webhooks, domain.WebhookDestination{Description: "x", URL: "https://example.com"})
	hooks, err := svc.ListWebhooks(ctx)
	require.NoError(t, err)
	assert.Len(t, hooks, 1, "mutating a snapshot does not leak back")
}

func TestSettingService_AddWebhook(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestSettingService(t, nil)

	require.NoError(t, svc.AddWebhook(ctx, "main", " https://discordapp.com/api/webhooks/1/a "))
	hooks, err := svc.ListWebhooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.WebhookDestination{{Description: "main", URL: "https://discord.com/api/webhooks/1/a"}}, hooks)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, domain.SettingsVersion, repo.raw["version"])

	err = svc.AddWebhook(ctx, "MAIN", "https://discord.com/api/webhooks/2/b")
	var c *code.Code
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorWebhookExists.Code(), c.Code())

	err = svc.AddWebhook(ctx, "bad", "not a url")
	require.ErrorAs(t, err, &c)
	assert.Equal(t, code.ErrorWebhookInvalid.Code(), c.Code())
	assert.True(t, c.HaveDetails())

	assert.Equal(t, 1, repo.saves, "rejected edits are not saved")
}

func TestSettingService_RemoveWebhook(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSettingService(t, nil)
	require.NoError(t, svc.AddWebhook(ctx, "a", "https://discord.com/api/webhooks/1/a"))
	require.NoError(t, svc.AddWebhook(ctx, "b", "https://discord.com/api/webhooks/2/b"))

	require.NoError(t, svc.RemoveWebhook(ctx, "A"))
	hooks, err := svc.ListWebhooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", hooks[0].Description)
	assert.Len(t, hooks, 1)

	var c *code.Code
	require.ErrorAs(t, svc.RemoveWebhook(ctx, "a"), &c)
	assert.Equal(t, code.ErrorDestinationUnknown.Code(), c.Code())
}

func TestSettingService_Set(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		value   string
		check   func(t *testing.T, s *domain.Settings)
		wantErr *code.Code
	}{
		{
			name: "string", key: "customBotUsername", value: "bot",
			check: func(t *testing.T, s *domain.Settings) { assert.Equal(t, "bot", s.CustomBotUsername) },
		},
		{
			name: "bool", key: "useNoteTitleForEmbed", value: "true",
			check: func(t *testing.T, s *domain.Settings) { assert.True(t, s.UseNoteTitleForEmbed) },
		},
		{
			name: "int", key: "localSuggestionsLimit", value: "25",
			check: func(t *testing.T, s *domain.Settings) { assert.Equal(t, 25, s.LocalSuggestionsLimit) },
		},
		{
			name: "nested", key: "embedDefaultValues.embedDefaultAuthor.name", value: "me",
			check: func(t *testing.T, s *domain.Settings) { assert.Equal(t, "me", s.Defaults.Author.Name) },
		},
		{
			name: "override", key: "embedPropertyOverrides.embedColorPropertyOverride", value: "colour",
			check: func(t *testing.T, s *domain.Settings) { assert.Equal(t, "colour", s.Overrides.Color) },
		},
		{name: "unknown key", key: "nope", value: "x", wantErr: code.ErrorSettingKeyUnknown},
		{name: "unknown nested key", key: "embedDefaultValues.nope", value: "x", wantErr: code.ErrorSettingKeyUnknown},
		{name: "read only", key: "version", value: "9", wantErr: code.ErrorSettingKeyUnknown},
		{name: "list", key: "attachmentFormats", value: "png", wantErr: code.ErrorSettingKeyUnknown},
		{name: "bad bool", key: "showPreviewInLocalModal", value: "maybe", wantErr: code.ErrorInvalidParams},
		{name: "bad int", key: "localSuggestionsLimit", value: "ten", wantErr: code.ErrorInvalidParams},
		{name: "fails validation", key: "localSuggestionsLimit", value: "0", wantErr: code.ErrorSettingsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestSettingService(t, nil)
			err := svc.Set(ctx, tt.key, tt.value)
			if tt.wantErr != nil {
				var c *code.Code
				require.ErrorAs(t, err, &c)
				assert.Equal(t, tt.wantErr.Code(), c.Code())
				assert.Zero(t, repo.saves)
				return
			}
			require.NoError(t, err)
			s, err := svc.Snapshot(ctx)
			require.NoError(t, err)
			tt.check(t, s)
			assert.Equal(t, 1, repo.saves)
		})
	}
}

func TestSettingService_Keys(t *testing.T) {
	svc, _ := newTestSettingService(t, nil)
	keys := svc.Keys()

	assert.Contains(t, keys, "customBotUsername")
	assert.Contains(t, keys, "embedDefaultValues.embedDefaultFooter.iconURL")
	assert.Contains(t, keys, "embedPropertyOverrides.embedTitlePropertyOverride")
	assert.NotContains(t, keys, "version")
	assert.NotContains(t, keys, "discordWebhookURL")
	assert.NotContains(t, keys, "embedDefaultValues.embedDefaultFields")
	assert.IsNonDecreasing(t, keys)
}

func TestSettingService_Fields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSettingService(t, nil)

	require.NoError(t, svc.AddField(ctx, domain.EmbedField{Name: "a", Value: "1"}))
	require.NoError(t, svc.AddField(ctx, domain.EmbedField{Name: "b", Value: "2", Inline: true}))
	require.NoError(t, svc.RemoveField(ctx, "a"))

	s, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.EmbedField{{Name: "b", Value: "2", Inline: true}}, s.Defaults.Fields)

	var c *code.Code
	require.ErrorAs(t, svc.RemoveField(ctx, "a"), &c)
	assert.Equal(t, code.ErrorFieldNotFound.Code(), c.Code())
	assert.Error(t, svc.AddField(ctx, domain.EmbedField{Name: " "}))
}

func TestSettingService_Migrate(t *testing.T) {
	svc, repo := newTestSettingService(t, map[string]any{
		"version":    domain.SettingsVersion,
		"embedColor": "red",
	})

	migrated, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, 1, repo.saves)

	s, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "red", s.Defaults.Color)
}
