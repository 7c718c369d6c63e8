package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/lafrite/friterie/internal/config"
)

// Module exposes payment provider client and webhook verifier to fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(newVerifier),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Provider, error) {
	return NewHTTPClient(p.Config.PaymentAPIURL, p.Config.PaymentSecretKey, p.Config.ProviderTimeout, p.Logger)
}

func newVerifier(cfg *config.Config) *SignatureVerifier {
	return NewSignatureVerifier(cfg.WebhookSecret, DefaultSignatureTolerance)
}
