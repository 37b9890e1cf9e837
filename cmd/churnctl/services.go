package main

import (
	"fmt"

	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/internal/config"
	"github.com/liamcoop/churn/model"
	"github.com/liamcoop/churn/prediction"
	"github.com/liamcoop/churn/validation"
)

// services is the validation and prediction chain shared by the subcommands
type services struct {
	validator *validation.Validator
	predictor *prediction.Predictor
}

func newServices(cfg config.Config) (*services, error) {
	m, err := model.Load(cfg.ModelURI, cfg.ModelTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	v, err := validation.NewValidator(catalog.Churn, validation.DefaultRules()...)
	if err != nil {
		return nil, err
	}
	p, err := prediction.NewPredictor(m, catalog.Churn.Names())
	if err != nil {
		return nil, err
	}
	return &services{validator: v, predictor: p}, nil
}
