package main

import (
	"flag"
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"

	"github.com/neurlang/handwriting/config"
	"github.com/neurlang/handwriting/datasets/nested"
	"github.com/neurlang/handwriting/glyph"
	"github.com/neurlang/handwriting/model"
)

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	data := flag.String("data", "", "training directory, one sub-directory per class")
	validationDir := flag.String("validation", "", "validation directory, same layout as the training one")
	dstmodel := flag.String("dstmodel", "", "model destination .json.lzw file")
	topology := flag.String("topology", "", "network topology: deep or shallow")
	epochs := flag.Int("epochs", -1, "number of training epochs")
	resume := flag.Bool("resume", false, "resume training from the model destination")
	flag.Bool("pgo", false, "collect a cpu profile into default.pgo")
	flag.Parse()

	cfg, err := config.Load(*cfgPath, ".env")
	if err != nil {
		panic(err.Error())
	}
	if *data != "" {
		cfg.DataDir = *data
	}
	if *validationDir != "" {
		cfg.ValidationDir = *validationDir
	}
	if *dstmodel != "" {
		cfg.ModelPath = *dstmodel
	}
	if *topology != "" {
		cfg.Topology = *topology
	}
	if *epochs >= 0 {
		cfg.Epochs = *epochs
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	logger, err := cfg.Logger()
	if err != nil {
		panic(err.Error())
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("cpu", cpuid.CPU.BrandName),
		zap.Int("threads", cfg.Threads),
		zap.String("data", cfg.DataDir),
		zap.String("topology", cfg.Topology),
	)

	set, err := nested.Load(cfg.DataDir, nested.WithLogger(logger.Named("loader")))
	if err != nil {
		logger.Fatal("cannot load the training set", zap.Error(err))
	}
	set.Shuffle(cfg.Seed)

	var validation *nested.LabeledImageSet
	switch {
	case cfg.ValidationDir != "":
		validation, err = nested.Load(cfg.ValidationDir, nested.WithLogger(logger.Named("loader")))
		if err != nil {
			logger.Fatal("cannot load the validation set", zap.Error(err))
		}
	case cfg.ValidationSplit > 0:
		set, validation = set.Split(cfg.ValidationSplit)
	}

	top, err := model.ParseTopology(cfg.Topology)
	if err != nil {
		panic(err.Error())
	}
	classifier, err := model.Build(glyph.Shape(), glyph.NumClasses, top, cfg.Hyperparameters(logger))
	if err != nil {
		panic(err.Error())
	}
	if *resume {
		loaded, err := classifier.Resume(cfg.ModelPath)
		if err != nil {
			logger.Fatal("cannot resume", zap.String("model", cfg.ModelPath), zap.Error(err))
		}
		logger.Info("resume", zap.Bool("loaded", loaded))
	}

	if err := classifier.Fit(set); err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}
	if err := classifier.Save(cfg.ModelPath); err != nil {
		logger.Fatal("cannot save the model", zap.String("model", cfg.ModelPath), zap.Error(err))
	}

	fmt.Printf("Training accuracy: %.2f%%\n", model.ValidateModel(classifier, set))
	if validation != nil {
		fmt.Printf("Validation accuracy: %.2f%%\n", model.ValidateModel(classifier, validation))
	}
}
