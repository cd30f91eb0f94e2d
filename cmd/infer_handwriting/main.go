package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/neurlang/handwriting/charcode"
	"github.com/neurlang/handwriting/config"
	"github.com/neurlang/handwriting/glyph"
	"github.com/neurlang/handwriting/model"
	"github.com/neurlang/handwriting/segment"
)

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	srcmodel := flag.String("srcmodel", "", "model .json.lzw file")
	img := flag.String("image", "", "image to recognize")
	offset := flag.Int("offset", -1, "code point of class 0")
	classes := flag.String("classes", "", "training directory, maps classes to characters instead of the offset")
	annotated := flag.String("annotated", "", "write the image with the located characters boxed")
	flag.Parse()

	cfg, err := config.Load(*cfgPath, ".env")
	if err != nil {
		panic(err.Error())
	}
	if *srcmodel != "" {
		cfg.ModelPath = *srcmodel
	}
	if *offset >= 0 {
		cfg.Offset = *offset
	}
	if *annotated != "" {
		cfg.AnnotatedPath = *annotated
	}
	if *img == "" {
		panic("no -image given")
	}

	logger, err := cfg.Logger()
	if err != nil {
		panic(err.Error())
	}
	defer logger.Sync()

	top, err := model.ParseTopology(cfg.Topology)
	if err != nil {
		panic(err.Error())
	}
	classifier, err := model.Build(glyph.Shape(), glyph.NumClasses, top, cfg.Hyperparameters(logger))
	if err != nil {
		panic(err.Error())
	}
	if err := classifier.Load(cfg.ModelPath); err != nil {
		logger.Fatal("cannot load the model", zap.Error(err))
	}

	var names []string
	if *classes != "" {
		names, err = charcode.DirectoryNamesToCharacters(*classes)
		if err != nil {
			logger.Fatal("cannot read the classes", zap.Error(err))
		}
	}

	res, err := segment.SegmentFile(*img, segment.WithLogger(logger.Named("segment")))
	if err != nil {
		logger.Fatal("cannot segment", zap.String("image", *img), zap.Error(err))
	}
	defer res.Close()

	for _, r := range res.Regions {
		var ch string
		if names != nil {
			class := classifier.PredictClass(&r.Crop)
			if class >= len(names) {
				logger.Warn("class without a directory", zap.Int("class", class))
				continue
			}
			ch = names[class]
		} else {
			ch, err = charcode.DecodeOneHot(classifier.Predict(&r.Crop), cfg.Offset)
			if err != nil {
				logger.Warn("cannot decode", zap.Stringer("box", r.Box), zap.Error(err))
				continue
			}
		}
		fmt.Printf("%d\t%d\t%d\t%d\t%s\n", r.Box.Min.X, r.Box.Min.Y, r.Box.Dx(), r.Box.Dy(), ch)
	}

	if cfg.AnnotatedPath != "" {
		if !gocv.IMWrite(cfg.AnnotatedPath, res.Annotated) {
			logger.Error("cannot write the annotated image", zap.String("path", cfg.AnnotatedPath))
		}
	}
}
