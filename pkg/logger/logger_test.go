package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "debug"})
	assert.Equal(t, zerolog.DebugLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestNew_EstampaElServicio(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "ganaderia-api"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("listo")

	assert.Contains(t, buf.String(), `"service":"ganaderia-api"`)
	assert.Contains(t, buf.String(), `"message":"listo"`)
}
