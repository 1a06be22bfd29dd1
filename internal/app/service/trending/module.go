package trending

import "go.uber.org/fx"

// Module exposes the trending service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
