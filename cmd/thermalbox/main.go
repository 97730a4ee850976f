package main

import (
	"context"
	"flag"
	"path/filepath"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()
	log.Println("thermalbox start")
	defer func() {
		log.Printf("thermalbox end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	var yMin, yMax float64
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.Float64Var(&yMin, "ymin", 10, "Lower end of the temperature axis")
	flag.Float64Var(&yMax, "ymax", 35, "Upper end of the temperature axis. Set ymax <= ymin to fit each species.")
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
	agg := roi.NewAggregator(data, config.Indices)

	for _, sp := range config.Species {
		rois, err := agg.AllRegions(sp.Tag)
		if err != nil {
			log.Fatalln(err)
		}

		p, err := figure.RegionBoxplot(rois, sp.Color, yMin, yMax)
		if err != nil {
			log.Fatalln(err)
		}
		p.Title.Text = sp.Name

		if err := figure.SavePlot(p, 7, 4, filepath.Join(config.OutputPath, figure.BoxplotName(sp.Tag))); err != nil {
			log.Fatalln(err)
		}
	}
}
