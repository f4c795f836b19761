package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"go.uber.org/zap"
)

// Tokenizer estimates how many model tokens a text costs.
type Tokenizer interface {
	CountTokens(text string) int
}

type tiktokenCounter struct {
	ttk *tiktoken.Tiktoken
}

func (c *tiktokenCounter) CountTokens(text string) int {
	if c.ttk == nil {
		return 0
	}
	return len(c.ttk.EncodeOrdinary(text))
}

type hfCounter struct {
	htk    *hf.Tokenizer
	logger *zap.Logger
}

func (c *hfCounter) CountTokens(text string) int {
	if c.htk == nil {
		return 0
	}
	en, err := c.htk.EncodeSingle(text)
	if err != nil {
		c.logger.Warn("HuggingFace tokenizer failed to encode text", zap.Error(err))
		return 0
	}
	return len(en.Tokens)
}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// tokenizerOptions selects a tokenizer implementation.
type tokenizerOptions struct {
	Kind  string // tiktoken or huggingface
	Model string
	File  string // Local tokenizer.json, huggingface only
}

// newTokenizer returns the tokenizer described by opts.
func newTokenizer(opts tokenizerOptions, logger *zap.Logger) (Tokenizer, error) {
	switch strings.ToLower(opts.Kind) {
	case "", "tiktoken":
		return loadTiktoken(opts.Model, logger)
	case "huggingface":
		return loadHuggingFace(opts.Model, opts.File, logger)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", opts.Kind)
	}
}

func loadTiktoken(model string, logger *zap.Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("Tiktoken model not found, falling back to default",
			zap.String("model", model), zap.String("default", defaultTiktokenModel), zap.Error(err))
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &tiktokenCounter{ttk: tke}, nil
}

func loadHuggingFace(model, file string, logger *zap.Logger) (Tokenizer, error) {
	if file == "" {
		if model == "" {
			model = defaultHFModel
		}
		logger.Info("Loading HuggingFace tokenizer (this may download files)", zap.String("model", model))
		path, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
		}
		file = path
	}

	ttk, err := pretrained.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", file, err)
	}
	return &hfCounter{htk: ttk, logger: logger}, nil
}
