package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/ranksum"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

func main() {
	start := time.Now()
	log.Println("thermalgroups start")
	defer func() {
		log.Printf("thermalgroups end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	var histograms bool
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.BoolVar(&histograms, "histograms", true, "Also draw one histogram per group comparing the species")
	flag.Parse()

	config, err := study.Load(configPath)
	if err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	if err := run(config, histograms); err != nil {
		log.Fatalln(err)
	}
}

// run tests, for every group, whether the first species is warmer than the
// second, and prints one line per group.
func run(config study.Config, histograms bool) error {
	data, err := config.OpenDataset(context.Background())
	if err != nil {
		return err
	}

	tester, err := config.Tester()
	if err != nil {
		return err
	}

	agg := roi.NewAggregator(data, config.Indices)
	a, b := config.Species[0], config.Species[1]

	fmt.Fprintf(os.Stdout, "group\tmean_%s\tmean_%s\tU\tp\tsignificant\n", a.Tag, b.Tag)
	for _, g := range config.Groups {
		x, err := agg.Pooled(a.Tag, g.Regions)
		if err != nil {
			return err
		}
		y, err := agg.Pooled(b.Tag, g.Regions)
		if err != nil {
			return err
		}

		res, err := tester.Test(x, y, ranksum.Greater)
		if err != nil {
			return fmt.Errorf("%s: %w", g.Name, err)
		}
		fmt.Fprintf(os.Stdout, "%s\t%.3f\t%.3f\t%.1f\t%.3g\t%v\n", g.Name, stat.Mean(x, nil), stat.Mean(y, nil), res.U, res.P, res.P < tester.P)

		if !histograms {
			continue
		}

		series := []figure.Series{
			{Name: a.Name, Color: a.Color, Values: x},
			{Name: b.Name, Color: b.Color, Values: y},
		}
		p, err := figure.SpeciesHistogram(series, figure.SqrtBins(series...), "Temperature (°C)", true)
		if err != nil {
			return fmt.Errorf("%s: %w", g.Name, err)
		}
		p.Title.Text = g.Name
		if err := figure.SavePlot(p, 5, 4, filepath.Join(config.OutputPath, figure.GroupHistogramName(g.Name))); err != nil {
			return err
		}
	}

	return nil
}
