package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/embed"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()
	log.Println("thermalembed start")
	defer func() {
		log.Printf("thermalembed end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath, statistic string
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.StringVar(&statistic, "statistic", "", fmt.Sprintf("(Optional) One of %v. By default every statistic is plotted.", embed.Statistics))
	flag.Parse()

	config, err := study.Load(configPath)
	if err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	statistics := embed.Statistics
	if statistic != "" {
		s, err := embed.ParseStatistic(statistic)
		if err != nil {
			log.Fatalln(err)
		}
		statistics = []embed.Statistic{s}
	}

	data, err := config.OpenDataset(context.Background())
	if err != nil {
		log.Fatalln(err)
	}
	agg := roi.NewAggregator(data, config.Indices)

	for _, s := range statistics {
		for _, normalise := range []bool{false, true} {
			if err := plotProjection(config, agg, s, normalise); err != nil {
				log.Fatalln(err)
			}
		}
	}
}

// plotProjection draws every animal on the first two principal components of
// its per-region statistic, colored by species.
func plotProjection(config study.Config, agg *roi.Aggregator, s embed.Statistic, normalise bool) error {
	features, err := embed.Extract(agg, config.Tags(), s, normalise)
	if err != nil {
		return err
	}

	proj, err := embed.PCA(features.X, 2)
	if err != nil {
		return err
	}

	series := make([]figure.ScatterSeries, 0, len(config.Species))
	for _, sp := range config.Species {
		ss := figure.ScatterSeries{Name: sp.Name, Color: sp.Color}
		for i, subject := range features.Subjects {
			if subject.Species != sp.Tag {
				continue
			}
			ss.X = append(ss.X, proj.Scores.At(i, 0))
			ss.Y = append(ss.Y, proj.Scores.At(i, 1))
		}
		series = append(series, ss)
	}

	png, err := figure.Scatter(series,
		fmt.Sprintf("PC1 (%.0f%%)", 100*proj.Explained[0]),
		fmt.Sprintf("PC2 (%.0f%%)", 100*proj.Explained[1]))
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"statistic":  s,
		"normalised": normalise,
		"explained":  proj.Explained,
	}).Infoln("Projected animals")

	return figure.SaveBytes(filepath.Join(config.OutputPath, figure.ScatterName(string(s), normalise)), png)
}
