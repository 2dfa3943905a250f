package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container раздает мидлвари обработчикам: общие (Use) получает каждый,
// добавленные через Add - только следующий вызов GetAllAndClear.
type Container struct {
	common  huma.Middlewares
	pending huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

// Use регистрирует мидлвари для всех обработчиков
func (mc *Container) Use(mw ...func(ctx huma.Context, next func(huma.Context))) {
	mc.common = append(mc.common, mw...)
}

// Add регистрирует мидлвари только для очередного обработчика
func (mc *Container) Add(mw ...func(ctx huma.Context, next func(huma.Context))) {
	mc.pending = append(mc.pending, mw...)
}

// GetAllAndClear возвращает общие и накопленные мидлвари, накопленные сбрасываются.
// Каждый вызов отдает новый срез.
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := make(huma.Middlewares, 0, len(mc.common)+len(mc.pending))
	result = append(result, mc.common...)
	result = append(result, mc.pending...)
	mc.pending = nil
	return result
}
