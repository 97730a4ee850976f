package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/carbocation/hdthermal/compileinfoprint"
	"github.com/carbocation/hdthermal/dataset"
	"github.com/carbocation/hdthermal/figure"
	"github.com/carbocation/hdthermal/pattern"
	"github.com/carbocation/hdthermal/roi"
	"github.com/carbocation/hdthermal/study"
	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()
	log.Println("thermalpattern start")
	defer func() {
		log.Printf("thermalpattern end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	var prepare, plot bool
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a study JSON config. Defaults reproduce the horse/donkey study.")
	flag.BoolVar(&prepare, "prepare", false, "Compute the pattern matrices of each species and of the anomalous animals, and save them as .npz archives")
	flag.BoolVar(&plot, "plot", false, "Plot the saved pattern matrices and their cross-species comparison")
	flag.Parse()

	if !prepare && !plot {
		flag.Usage()
		log.Fatalln("Pass -prepare, -plot, or both")
	}

	config, err := study.Load(configPath)
	if err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	if prepare {
		if err := runPrepare(config); err != nil {
			log.Fatalln(err)
		}
	}

	if plot {
		if err := runPlot(config); err != nil {
			log.Fatalln(err)
		}
	}
}

func runPrepare(config study.Config) error {
	data, err := config.OpenDataset(context.Background())
	if err != nil {
		return err
	}

	tester, err := config.Tester()
	if err != nil {
		return err
	}

	agg := roi.NewAggregator(data, config.Indices)
	for _, species := range config.Tags() {
		m, err := pattern.Build(agg, tester, species, config.Groups, config.Indices)
		if err != nil {
			return err
		}
		if err := pattern.Save(filepath.Join(config.PatternPath, pattern.FileName(species)), m); err != nil {
			return err
		}

		for _, index := range config.Anomalous(species) {
			m, err := pattern.BuildSubject(agg, tester, species, config.Groups, index)
			if err != nil {
				return err
			}
			if err := pattern.Save(filepath.Join(config.PatternPath, pattern.SubjectFileName(species, index)), m); err != nil {
				return err
			}
		}
	}

	return nil
}

func runPlot(config study.Config) error {
	labels := config.GroupLabels()
	tags := config.Tags()

	bySpecies := make(map[dataset.Species]*pattern.Matrices)
	for _, species := range tags {
		m, err := loadMatrices(config, pattern.FileName(species))
		if err != nil {
			return err
		}
		bySpecies[species] = m

		grid, err := figure.DeltaGrid(m, labels)
		if err != nil {
			return err
		}
		if err := render(config, figure.DeltaMatrixName(species), grid); err != nil {
			return err
		}

		grid, err = figure.CountGrid(pattern.LocalCounts(m), labels, len(m.Subjects), true)
		if err != nil {
			return err
		}
		if err := render(config, figure.LocalMatrixName(species), grid); err != nil {
			return err
		}

		for _, index := range config.Anomalous(species) {
			if err := plotSubject(config, m, species, index); err != nil {
				return err
			}
		}
	}

	a, b := bySpecies[tags[0]], bySpecies[tags[1]]
	combined, err := pattern.Combine(a, b)
	if err != nil {
		return err
	}
	grid, err := figure.CategoryGrid(combined, labels, string(tags[0]))
	if err != nil {
		return err
	}
	if err := render(config, figure.CombinedMatrixName, grid); err != nil {
		return err
	}

	local, err := pattern.CombineLocal(a, b, combined)
	if err != nil {
		return err
	}
	vmax := len(a.Subjects)
	if len(b.Subjects) < vmax {
		vmax = len(b.Subjects)
	}
	grid, err = figure.CountGrid(local, labels, vmax, true)
	if err != nil {
		return err
	}

	return render(config, figure.CombinedLocalMatrixName, grid)
}

// plotSubject draws an anomalous animal's deltas and how its pattern agrees
// with the pattern of its species.
func plotSubject(config study.Config, species *pattern.Matrices, tag dataset.Species, index int) error {
	labels := config.GroupLabels()

	m, err := loadMatrices(config, pattern.SubjectFileName(tag, index))
	if err != nil {
		return err
	}

	grid, err := figure.DeltaGrid(m, labels)
	if err != nil {
		return err
	}
	if err := render(config, figure.SubjectDeltaMatrixName(tag, index), grid); err != nil {
		return err
	}

	agreement, err := pattern.CompareSubject(m, species)
	if err != nil {
		return err
	}
	grid, err = figure.AgreementGrid(agreement, labels)
	if err != nil {
		return err
	}

	return render(config, figure.SubjectAgreementName(index), grid)
}

func loadMatrices(config study.Config, name string) (*pattern.Matrices, error) {
	m, err := pattern.Load(filepath.Join(config.PatternPath, name))
	if err != nil {
		return nil, fmt.Errorf("%s (run with -prepare first?): %w", name, err)
	}
	if m.N() != len(config.Groups) {
		return nil, fmt.Errorf("%s has %d groups but %d are configured", name, m.N(), len(config.Groups))
	}
	m.Labels = config.GroupLabels()

	return m, nil
}

func render(config study.Config, name string, grid figure.Grid) error {
	img, err := grid.Render()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return figure.SavePNG(filepath.Join(config.OutputPath, name), img)
}
