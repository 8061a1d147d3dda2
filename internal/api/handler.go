package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/ssclab/internal/i18n"
	"github.com/terraincognita07/ssclab/internal/metrics"
	"github.com/terraincognita07/ssclab/internal/undo"
)

type Handler struct {
	services  *Services
	secretKey []byte
	i18n      *i18n.Manager
	undo      *undo.Registry
	metrics   *metrics.Metrics
	validate  *validator.Validate
	logger    *slog.Logger
}

type Options struct {
	Services  *Services
	SecretKey string
	I18n      *i18n.Manager
	Undo      *undo.Registry
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func NewHandler(options Options) (*Handler, error) {
	if options.Services == nil {
		return nil, errors.New("services are required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if options.Undo == nil {
		return nil, errors.New("undo registry is required")
	}
	if options.Metrics == nil {
		options.Metrics = metrics.New()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Handler{
		services:  options.Services,
		secretKey: []byte(options.SecretKey),
		i18n:      options.I18n,
		undo:      options.Undo,
		metrics:   options.Metrics,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    options.Logger,
	}, nil
}

func (handler *Handler) Metrics() *metrics.Metrics {
	return handler.metrics
}
