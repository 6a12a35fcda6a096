package app

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	gateway "github.com/jenusanjay/imageservice/internal/gateway/http"
	"github.com/jenusanjay/imageservice/internal/images"
	"github.com/jenusanjay/imageservice/internal/repository/dynamo"
	"github.com/jenusanjay/imageservice/internal/repository/s3"
)

type App struct {
	gateway *gateway.Gateway
}

func New() (*App, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	timeout, err := c.StoreTimeout()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	awsConfig := aws.NewConfig().WithRegion(c.Storage.Region)
	if c.Storage.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(c.Storage.Endpoint)
	}
	if c.Storage.AccessKey != "" {
		awsConfig = awsConfig.WithCredentials(
			credentials.NewStaticCredentials(c.Storage.AccessKey, c.Storage.AccessSecret, ""),
		)
	}

	// One session is shared by both stores for the process lifetime.
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	svc := images.New(images.Config{
		Blobs: s3.New(s3.StorageConfig{
			Session: sess,
			Bucket:  c.Storage.Bucket,
		}),
		Records: dynamo.New(dynamo.MetadataConfig{
			Session: sess,
			Table:   c.Storage.Table,
		}),
		Logger:       slog.Default(),
		StoreTimeout: timeout,
	})

	return &App{
		gateway: gateway.New(gateway.GatewayConfig{
			Images:  svc,
			Address: c.Gateway.Listen,
		}),
	}, nil
}

func (a *App) Run() error {
	if err := a.gateway.Run(); err != nil {
		return fmt.Errorf("gateway run: %w", err)
	}

	return nil
}

func (a *App) Shutdown() error {
	if err := a.gateway.Shutdown(); err != nil {
		return fmt.Errorf("gateway shutdown: %w", err)
	}

	return nil
}
