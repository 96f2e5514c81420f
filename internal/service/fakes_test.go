package service

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
	"github.com/haierkeys/note-discord-share/pkg/convert"
	"github.com/haierkeys/note-discord-share/pkg/discord"
	apperrors "github.com/haierkeys/note-discord-share/pkg/errors"
)

// --- Mocks ---

// fakeVault is an in-memory vault. A note has a metadata record when it is a
// key of meta; a nil map means the note has no frontmatter block.
type fakeVault struct {
	files map[string][]byte
	meta  map[string]map[string]any
	reads []string
}

func newFakeVault() *fakeVault {
	return &fakeVault{files: map[string][]byte{}, meta: map[string]map[string]any{}}
}

func (v *fakeVault) addNote(p string, fm map[string]any, body string) *fakeVault {
	v.files[p] = []byte(body)
	v.meta[p] = fm
	return v
}

func (v *fakeVault) addFile(p string, data []byte) *fakeVault {
	v.files[p] = data
	return v
}

func noteFile(p string) domain.NoteFile {
	return domain.NoteFile{Path: p, Name: path.Base(p)}
}

func (v *fakeVault) Metadata(file domain.NoteFile) (*domain.NoteMetadata, bool) {
	fm, ok := v.meta[file.Path]
	if !ok {
		return nil, false
	}
	return &domain.NoteMetadata{Frontmatter: fm}, true
}

func (v *fakeVault) ResolveLink(target, source string) (domain.NoteFile, bool) {
	if target == "" {
		return domain.NoteFile{}, false
	}
	for _, c := range []string{path.Join(path.Dir(source), target), target} {
		if _, ok := v.files[c]; ok {
			return noteFile(c), true
		}
	}
	var matches []string
	for p := range v.files {
		if strings.HasSuffix(p, "/"+target) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return domain.NoteFile{}, false
	}
	sort.Strings(matches)
	return noteFile(matches[0]), true
}

func (v *fakeVault) ReadBinary(file domain.NoteFile) ([]byte, error) {
	v.reads = append(v.reads, file.Path)
	data, ok := v.files[file.Path]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return data, nil
}

func (v *fakeVault) DisplayName(file domain.NoteFile) string {
	return strings.TrimSuffix(file.Name, path.Ext(file.Name))
}

func (v *fakeVault) File(p string) (domain.NoteFile, bool) {
	if _, ok := v.files[p]; !ok {
		return domain.NoteFile{}, false
	}
	return noteFile(p), true
}

func (v *fakeVault) ReadText(file domain.NoteFile) (string, error) {
	data, err := v.ReadBinary(file)
	return string(data), err
}

func (v *fakeVault) ListFiles(folder string, exts []string) ([]domain.NoteFile, error) {
	folder = strings.Trim(folder, "/")
	prefix := ""
	if folder != "" {
		prefix = folder + "/"
		found := false
		for p := range v.files {
			if strings.HasPrefix(p, prefix) {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrFolderNotFound
		}
	}
	var out []domain.NoteFile
	for p := range v.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
		for _, e := range exts {
			if ext == e {
				out = append(out, noteFile(p))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (v *fakeVault) Root() string { return "/vault" }

// fakeSender records every request and answers with err.
type fakeSender struct {
	mu          sync.Mutex
	err         error
	errFor      map[string]error
	embeds      []sentEmbed
	attachments []sentAttachment
}

type sentEmbed struct {
	endpoint string
	payload  *discord.WebhookPayload
	files    []discord.File
}

type sentAttachment struct {
	endpoint string
	identity discord.Identity
	file     discord.File
}

func (f *fakeSender) result(endpoint string) error {
	if err, ok := f.errFor[endpoint]; ok {
		return err
	}
	return f.err
}

func (f *fakeSender) SendEmbed(ctx context.Context, endpoint string, payload *discord.WebhookPayload, files []discord.File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, sentEmbed{endpoint: endpoint, payload: payload, files: files})
	return f.result(endpoint)
}

func (f *fakeSender) SendAttachment(ctx context.Context, endpoint string, identity discord.Identity, file discord.File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachments = append(f.attachments, sentAttachment{endpoint: endpoint, identity: identity, file: file})
	return f.result(endpoint)
}

// fakeChooser returns index and counts calls.
type fakeChooser struct {
	index int
	err   error
	calls int
}

func (c *fakeChooser) Choose(ctx context.Context, destinations []domain.WebhookDestination) (int, error) {
	c.calls++
	return c.index, c.err
}

// fakeNotifier records notices.
type fakeNotifier struct {
	successes []*code.Code
	failures  []*apperrors.AppError
}

func (n *fakeNotifier) Success(c *code.Code) { n.successes = append(n.successes, c) }
func (n *fakeNotifier) Failure(err *apperrors.AppError) { n.failures = append(n.failures, err) }

// fakeSettingsRepo keeps the stored document in memory.
type fakeSettingsRepo struct {
	raw   map[string]any
	saves int
}

func (r *fakeSettingsRepo) LoadRaw(ctx context.Context) (map[string]any, bool, error) {
	if r.raw == nil {
		return nil, false, nil
	}
	return r.raw, true, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	m, err := convert.StructToMap(s)
	if err != nil {
		return err
	}
	r.raw = m
	r.saves++
	return nil
}

func (r *fakeSettingsRepo) Location() string { return "memory://data.json" }

func webhooks(names ...string) []domain.WebhookDestination {
	out := make([]domain.WebhookDestination, 0, len(names))
	for _, n := range names {
		out = append(out, domain.WebhookDestination{Description: n, URL: "https://discord.com/api/webhooks/" + n})
	}
	return out
}

func settingsWith(names ...string) *domain.Settings {
	s := domain.InitialSettings()
	s.Webhooks = webhooks(names...)
	return s
}
