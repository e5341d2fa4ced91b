package attendance

import (
	"context"
	"time"

	"github.com/julianstephens/gradeboard/internal/cli"
	apperrors "github.com/julianstephens/gradeboard/internal/errors"
)

type CheckinCmd struct {
	Code    string        `arg:"" help:"Session code shown by the lecturer."`
	Timeout time.Duration `help:"Request timeout." default:"10s"`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	client, err := ctx.NewClient(settings)
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	result, err := client.CheckIn(reqCtx, c.Code)
	if err != nil {
		return apperrors.User(result.Message, err)
	}
	if !result.OK {
		ctx.Println("❌ " + result.Message)
		return nil
	}
	ctx.Println("✓ " + result.Message)
	return nil
}
