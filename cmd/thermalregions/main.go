package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()
	log.Println("thermalregions start")
	defer func() {
		log.Printf("thermalregions end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath, subject, selections string
	var scale int
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.StringVar(&subject, "subject", "H.1", "Subject whose labels are drawn")
	flag.StringVar(&selections, "selections", "0,2,3;1,4,7,8;5,6;9", "Semicolon-delimited maps, each a comma-delimited list of 0-based group positions. Groups within a map must not overlap.")
	flag.IntVar(&scale, "scale", 4, "Pixel enlargement factor")
	flag.Parse()

	config, err := study.Load(configPath)
	if err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	maps, err := parseSelections(selections)
	if err != nil {
		log.Fatalln(err)
	}

	data, err := config.OpenDataset(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	f, err := data.LoadName(subject)
	if err != nil {
		log.Fatalln(err)
	}

	b := config.CutBox
	cut := &figure.Box{Row0: b[0], Row1: b[1], Col0: b[2], Col1: b[3]}

	img, err := figure.RegionMap(f, config.Labels, cut, scale)
	if err != nil {
		log.Fatalln(err)
	}
	if err := figure.SavePNG(filepath.Join(config.OutputPath, figure.RegionMapName), img); err != nil {
		log.Fatalln(err)
	}

	for i, selection := range maps {
		img, err := figure.GroupMap(f, config.Groups, selection, cut, scale)
		if err != nil {
			log.Fatalf("Map %d: %v\n", i+1, err)
		}
		if err := figure.SavePNG(filepath.Join(config.OutputPath, figure.GroupMapName(i+1)), img); err != nil {
			log.Fatalln(err)
		}
	}
}

func parseSelections(s string) ([][]int, error) {
	var out [][]int
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		var selection []int
		for _, field := range strings.Split(part, ",") {
			i, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("selection %q: %w", part, err)
			}
			selection = append(selection, i)
		}
		out = append(out, selection)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no group selections in %q", s)
	}

	return out, nil
}
