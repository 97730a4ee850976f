package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

func main() {
	start := time.Now()
	log.Println("thermalcheck start")
	defer func() {
		log.Printf("thermalcheck end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
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

	problems := 0
	for _, species := range config.Tags() {
		for _, index := range config.Subjects(species) {
			issues, err := checkSubject(data, species, index, config.TemperatureBand)
			if err != nil {
				log.Fatalln(err)
			}
			for _, issue := range issues {
				fmt.Fprintf(os.Stdout, "%s\t%s\n", dataset.SubjectName(species, index), issue)
			}
			problems += len(issues)
		}
	}

	if problems > 0 {
		log.Fatalf("Found %d problems\n", problems)
	}
	log.Println("All subjects passed")
}

// checkSubject returns the problems found with one animal. An error is
// returned only when the animal cannot be read at all.
func checkSubject(data dataset.Dataset, species dataset.Species, index int, band [2]float64) ([]string, error) {
	f, err := data.Load(species, index)
	if err != nil {
		return nil, err
	}

	var issues []string
	if err := f.Validate(); err != nil {
		issues = append(issues, err.Error())
	}

	rois := roi.Extract(f)
	for id := 1; id <= roi.NumRegions; id++ {
		values := rois.Region(id)
		if len(values) == 0 {
			continue
		}
		if mean := stat.Mean(values, nil); mean < band[0] || mean > band[1] {
			issues = append(issues, fmt.Sprintf("region %d: mean %.2f outside [%.0f, %.0f]", id, mean, band[0], band[1]))
		}
	}

	return issues, nil
}
