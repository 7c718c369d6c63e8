package ws

import (
	"context"

	"go.uber.org/fx"
)

// Module wires the admin feed hub and its lifecycle.
var Module = fx.Options(
	fx.Provide(NewHub),
	fx.Invoke(runHub),
)

func runHub(lc fx.Lifecycle, hub *Hub) {
	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			go hub.Run(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			return nil
		},
	})
}
