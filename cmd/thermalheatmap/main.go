package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/describe"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()
	log.Println("thermalheatmap start")
	defer func() {
		log.Printf("thermalheatmap end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	var cut, background bool
	var scale int
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.BoolVar(&cut, "cut", true, "Crop each image to the configured cut box")
	flag.BoolVar(&background, "background", false, "Keep the temperature of unlabelled pixels")
	flag.IntVar(&scale, "scale", 2, "Pixel enlargement factor")
	flag.Parse()

	config, err := study.Load(configPath)
	if err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	data, err := config.OpenDataset(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	opts := figure.HeatmapOptions{
		KeepBackground: background,
		Scale:          scale,
	}
	if cut {
		b := config.CutBox
		opts.Cut = &figure.Box{Row0: b[0], Row1: b[1], Col0: b[2], Col1: b[3]}
	}
	fixed := &figure.TemperatureRange{Min: config.HeatmapRange[0], Max: config.HeatmapRange[1]}

	for _, sp := range config.Tags() {
		for _, index := range config.Subjects(sp) {
			name := dataset.SubjectName(sp, index)
			f, err := data.Load(sp, index)
			if err != nil {
				log.Fatalln(err)
			}
			opts.Title = name

			// One heatmap on the shared scale, one scaled to the animal itself
			for _, r := range []*figure.TemperatureRange{fixed, nil} {
				opts.Range = r
				img, err := figure.Heatmap(f, opts)
				if err != nil {
					log.Fatalln(err)
				}
				if err := figure.SavePNG(filepath.Join(config.OutputPath, figure.HeatmapName(name, r == nil)), img); err != nil {
					log.Fatalln(err)
				}
			}
		}
	}

	agg := roi.NewAggregator(data, config.Indices)
	summaries, err := describe.GlobalTemperatures(agg, config.Tags()...)
	if err != nil {
		log.Fatalln(err)
	}
	for _, s := range summaries {
		log.Infoln(s)
	}
	if err := describe.WriteTSV(os.Stdout, &summaries); err != nil {
		log.Fatalln(err)
	}
}
