package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	c := NewContainer()
	noop := func(ctx huma.Context, next func(huma.Context)) { next(ctx) }

	c.Add(noop, noop)
	assert.Len(t, c.GetAllAndClear(), 2)
	assert.Empty(t, c.GetAllAndClear())

	c.Add(noop)
	assert.Len(t, c.GetAllAndClear(), 1)
}

func TestContainer_CommonGoFirstToEveryHandler(t *testing.T) {
	c := NewContainer()

	var calls []string
	named := func(name string) func(huma.Context, func(huma.Context)) {
		return func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, name)
			next(ctx)
		}
	}

	c.Use(named("logger"))
	c.Add(named("local"))

	first := c.GetAllAndClear()
	second := c.GetAllAndClear()
	assert.Len(t, first, 2)
	assert.Len(t, second, 1)

	for _, mw := range first {
		mw(nil, func(huma.Context) {})
	}
	assert.Equal(t, []string{"logger", "local"}, calls)

	// Срезы независимы: изменение одного не влияет на другой
	first[0] = named("replaced")
	calls = nil
	second[0](nil, func(huma.Context) {})
	assert.Equal(t, []string{"logger"}, calls)
}
