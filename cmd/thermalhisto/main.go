package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/describe"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()
	log.Println("thermalhisto start")
	defer func() {
		log.Printf("thermalhisto end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	var terminal int
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.IntVar(&terminal, "terminal", -1, "(Optional) Region (0 for the whole animal) whose histogram is also printed to the terminal, per species")
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

	if err := histograms(config, agg, terminal); err != nil {
		log.Fatalln(err)
	}

	if err := differences(config, agg); err != nil {
		log.Fatalln(err)
	}
}

// histograms draws, for the whole animal and for each region, the
// distribution of temperatures of both species.
func histograms(config study.Config, agg *roi.Aggregator, terminal int) error {
	for id := 0; id <= roi.NumRegions; id++ {
		series := make([]figure.Series, 0, len(config.Species))
		for _, sp := range config.Species {
			values, err := agg.Region(sp.Tag, id)
			if err != nil {
				return err
			}
			series = append(series, figure.Series{Name: sp.Name, Color: sp.Color, Values: values})

			if id == terminal {
				fmt.Fprintf(os.Stdout, "%s, region %d\n", sp.Name, id)
				if err := figure.TerminalHistogram(os.Stdout, values, 20); err != nil {
					return err
				}
			}
		}

		nBins := figure.SqrtBins(series...)
		for _, small := range []bool{false, true} {
			p, err := figure.SpeciesHistogram(series, nBins, "Temperature (°C)", !small)
			if err != nil {
				return fmt.Errorf("region %d: %w", id, err)
			}

			width, height := 5.0, 4.0
			if small {
				width, height = 2.5, 2
			}
			if err := figure.SavePlot(p, width, height, filepath.Join(config.OutputPath, figure.HistogramName(id, small))); err != nil {
				return err
			}
		}
	}

	return nil
}

// differences writes per-region summaries and the species differences as
// TSV files in the output folder.
func differences(config study.Config, agg *roi.Aggregator) error {
	a, b := config.Species[0].Tag, config.Species[1].Tag

	for _, sp := range config.Tags() {
		summaries, err := describe.RegionSummaries(agg, sp)
		if err != nil {
			return err
		}
		if err := writeTSV(filepath.Join(config.OutputPath, fmt.Sprintf("roi_summary_%s.tsv", sp)), &summaries); err != nil {
			return err
		}
	}

	diffs, err := describe.RegionDifferences(agg, a, b)
	if err != nil {
		return err
	}
	if err := writeTSV(filepath.Join(config.OutputPath, "roi_differences.tsv"), &diffs); err != nil {
		return err
	}

	smallest, largest, err := describe.Extremes(diffs)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"smallest": smallest,
		"largest":  largest,
	}).Infof("Regions with the smallest and largest difference between %s and %s", a, b)

	pixels, err := describe.PixelCountDifferences(agg, a, b)
	if err != nil {
		return err
	}
	log.Infof("Pixel count difference per region: median %.1f%%, mean %.1f%% (std %.1f%%)", pixels.Median, pixels.Mean, pixels.StdDev)

	return nil
}

func writeTSV(path string, rows interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := describe.WriteTSV(f, rows); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
