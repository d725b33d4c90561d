package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/taskboard-api/cmd/internal"
)

func TestNewServerBrokerSelection(t *testing.T) {
	t.Parallel()

	base := serverConfig{
		Address:   ":0",
		JWTSecret: "secret",
		Metrics:   http.NotFoundHandler(),
		Logger:    zap.NewNop(),
	}

	t.Run("kafka is the default", func(t *testing.T) {
		t.Parallel()

		conf := base
		conf.Kafka = &internal.KafkaProducer{Topic: "tasks"}

		srv, err := newServer(conf)
		require.NoError(t, err)
		require.NotNil(t, srv)
	})

	t.Run("rabbitmq when configured", func(t *testing.T) {
		t.Parallel()

		conf := base
		conf.RabbitMQ = &internal.RabbitMQ{}

		srv, err := newServer(conf)
		require.NoError(t, err)
		require.NotNil(t, srv)
	})
}
