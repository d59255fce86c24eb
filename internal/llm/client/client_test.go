package client

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	reply *schema.Message
	err   error
	got   []*schema.Message
}

func (f *fakeChat) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = in
	return f.reply, f.err
}

func (f *fakeChat) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestRefine_SendsSystemAndUserMessages(t *testing.T) {
	chat := &fakeChat{reply: schema.AssistantMessage("  \"A neon doge astronaut on the moon\"  ", nil)}
	r, err := NewRefiner(chat)
	require.NoError(t, err)

	out, err := r.Refine(context.Background(), "  doge on moon ")
	require.NoError(t, err)
	assert.Equal(t, "A neon doge astronaut on the moon", out)

	require.Len(t, chat.got, 2)
	assert.Equal(t, schema.System, chat.got[0].Role)
	assert.Contains(t, chat.got[0].Content, "image prompts")
	assert.Equal(t, schema.User, chat.got[1].Role)
	assert.Equal(t, "doge on moon", chat.got[1].Content)
}

func TestRefine_Errors(t *testing.T) {
	r, err := NewRefiner(&fakeChat{})
	require.NoError(t, err)
	_, err = r.Refine(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = r.Refine(context.Background(), "logo")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	r, err = NewRefiner(&fakeChat{err: errors.New("rate limited")})
	require.NoError(t, err)
	_, err = r.Refine(context.Background(), "logo")
	assert.EqualError(t, err, "rate limited")
}

func TestCleanAnswer(t *testing.T) {
	cases := map[string]string{
		"plain":                 "plain",
		"'single'":              "single",
		"`tick`":                "tick",
		"“curly”":               "curly",
		"\"unbalanced":          "\"unbalanced",
		"  \" padded inside \"": "padded inside",
		"\"":                    "\"",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanAnswer(schema.AssistantMessage(in, nil)), in)
	}
	assert.Equal(t, "", cleanAnswer(nil))
}

func TestNewChatModel_Validation(t *testing.T) {
	_, err := NewChatModel(context.Background(), ModelConfig{Provider: ProviderOpenAI})
	assert.Error(t, err)

	_, err = NewChatModel(context.Background(), ModelConfig{Provider: "mistral", APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	m, err := NewChatModel(context.Background(), ModelConfig{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini", BaseURL: "https://router.example.com/"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}
