package bootstrap

import (
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewGateway(cfg config.Config, clk clock.Clock) (*gateway.VNPay, error) {
	return gateway.NewVNPay(cfg.Gateway, clk)
}
