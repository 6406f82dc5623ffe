package domain

import "context"

type temperatureKey struct{}

// WithTemperature asks the completion gateway to sample calls made with ctx
// at temperature t. Gateways without a sampling knob ignore it.
func WithTemperature(ctx context.Context, t float32) context.Context {
	return context.WithValue(ctx, temperatureKey{}, t)
}

// TemperatureFromContext returns the temperature set by WithTemperature.
func TemperatureFromContext(ctx context.Context) (float32, bool) {
	t, ok := ctx.Value(temperatureKey{}).(float32)
	return t, ok
}
