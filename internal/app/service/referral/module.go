package referral

import "go.uber.org/fx"

// Module exposes the referral service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
