package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikalabs/walletchat/internal/model"
)

type stubChatter struct {
	reply string
	err   error
	calls int
}

func (s *stubChatter) Chat(ctx context.Context, msgs []model.Message) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubEmbedder struct {
	vec   []float32
	err   error
	name  string
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubEmbedder) ModelName() string {
	return s.name
}

func TestGroupChatterFallsThroughOnError(t *testing.T) {
	primary := &stubChatter{err: errors.New("down")}
	secondary := &stubChatter{reply: "from backup"}
	group := NewGroupChatter([]ChatterEntry{
		{Name: "primary", Chatter: primary},
		{Name: "secondary", Chatter: secondary},
	})

	reply, err := group.Chat(context.Background(), []model.Message{{Role: model.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "from backup", reply)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, 1, secondary.calls)
}

func TestGroupChatterStopsAtFirstSuccess(t *testing.T) {
	primary := &stubChatter{reply: "from primary"}
	secondary := &stubChatter{reply: "from backup"}
	group := NewGroupChatter([]ChatterEntry{
		{Name: "primary", Chatter: primary},
		{Name: "secondary", Chatter: secondary},
	})

	reply, err := group.Chat(context.Background(), []model.Message{{Role: model.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "from primary", reply)
	require.Zero(t, secondary.calls)
}

func TestGroupChatterReturnsLastError(t *testing.T) {
	wantErr := errors.New("also down")
	group := NewGroupChatter([]ChatterEntry{
		{Name: "primary", Chatter: &stubChatter{err: errors.New("down")}},
		{Name: "secondary", Chatter: &stubChatter{err: wantErr}},
	})

	_, err := group.Chat(context.Background(), []model.Message{{Role: model.RoleUser, Content: "hi"}})
	require.ErrorIs(t, err, wantErr)
}

func TestGroupChatterSingleEntryUnwrapped(t *testing.T) {
	only := &stubChatter{reply: "solo"}
	group := NewGroupChatter([]ChatterEntry{{Name: "only", Chatter: only}})
	require.Equal(t, only, group)
}

func TestGroupEmbedderFallsThroughAndJoinsNames(t *testing.T) {
	group := NewGroupEmbedder([]EmbedderEntry{
		{Name: "openai", Embedder: &stubEmbedder{err: errors.New("down"), name: "openai"}},
		{Name: "gemini", Embedder: &stubEmbedder{vec: []float32{1, 2}, name: "gemini"}},
	})

	vec, err := group.Embed(context.Background(), "text")
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2}, vec)
	require.Equal(t, "openai|gemini", group.ModelName())
}

func TestGroupEmptyReturnsNil(t *testing.T) {
	require.Nil(t, NewGroupChatter(nil))
	require.Nil(t, NewGroupEmbedder(nil))
}
