package cache

import (
	"context"
	"testing"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/stretchr/testify/assert"
)

func TestNopJobPostCache(t *testing.T) {
	ctx := context.TODO()
	c := NewNopJobPostCache()

	assert.NoError(t, c.SetJobPost(ctx, &v1.JobPost{ID: 1}))
	got, err := c.GetJobPost(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, c.SetRendered(ctx, 1, 1, v1.RenderFormatHTML, "<p>x</p>"))
	_, ok, err := c.GetRendered(ctx, 1, 1, v1.RenderFormatHTML)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.DeleteJobPost(ctx, 1))
}

func TestNopKV(t *testing.T) {
	var kv KV = NopKV{}
	assert.NoError(t, kv.Set(context.TODO(), "k", "v", time.Minute))

	var v string
	ok, err := kv.Get(context.TODO(), "k", &v)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "jobpost:42", jobPostKey(42))
	assert.Equal(t, "jobpost:render:42", jobPostRenderKey(42))
	assert.Equal(t, "3:html", renderField(3, v1.RenderFormatHTML))
}
