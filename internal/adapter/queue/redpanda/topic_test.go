package redpanda

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

type fakeRequester struct {
	resp kmsg.Response
	err  error
	req  *kmsg.CreateTopicsRequest
}

func (f *fakeRequester) Request(_ context.Context, req kmsg.Request) (kmsg.Response, error) {
	f.req, _ = req.(*kmsg.CreateTopicsRequest)
	return f.resp, f.err
}

func topicsResponse(code int16) *kmsg.CreateTopicsResponse {
	resp := kmsg.NewCreateTopicsResponse()
	t := kmsg.NewCreateTopicsResponseTopic()
	t.Topic = "task-reminders"
	t.ErrorCode = code
	resp.Topics = append(resp.Topics, t)
	return &resp
}

func TestCreateTopicIfNotExists_Validation(t *testing.T) {
	ctx := context.Background()
	fr := &fakeRequester{}
	assert.Error(t, createTopicIfNotExists(ctx, fr, "", 1, 1))
	assert.Error(t, createTopicIfNotExists(ctx, fr, "t", 0, 1))
	assert.Error(t, createTopicIfNotExists(ctx, fr, "t", 1, 0))
	assert.Nil(t, fr.req)
}

func TestCreateTopicIfNotExists_Responses(t *testing.T) {
	ctx := context.Background()

	created := &fakeRequester{resp: topicsResponse(0)}
	require.NoError(t, createTopicIfNotExists(ctx, created, "task-reminders", 3, 1))
	require.NotNil(t, created.req)
	require.Len(t, created.req.Topics, 1)
	assert.Equal(t, int32(3), created.req.Topics[0].NumPartitions)

	exists := &fakeRequester{resp: topicsResponse(kerr.TopicAlreadyExists.Code)}
	require.NoError(t, createTopicIfNotExists(ctx, exists, "task-reminders", 3, 1))

	denied := &fakeRequester{resp: topicsResponse(kerr.TopicAuthorizationFailed.Code)}
	err := createTopicIfNotExists(ctx, denied, "task-reminders", 3, 1)
	require.ErrorIs(t, err, kerr.TopicAuthorizationFailed)

	broken := &fakeRequester{err: errors.New("dial tcp: refused")}
	require.Error(t, createTopicIfNotExists(ctx, broken, "task-reminders", 3, 1))
}
