package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/roomfit/internal/engine"
	"github.com/piwi3910/roomfit/internal/export"
	"github.com/piwi3910/roomfit/internal/model"
	"github.com/piwi3910/roomfit/internal/project"
)

type fitOptions struct {
	search   searchOptions
	pdfPath  string
	xlsxPath string
	jsonPath string
	savePath string
}

func (a *app) fitCmd() *cobra.Command {
	var opts fitOptions

	cmd := &cobra.Command{
		Use:   "fit <boundary>",
		Short: "Fit the largest rectangle inside a boundary",
		Long: `Fit the largest rectangle inside a boundary.

The boundary is a CSV, Excel, DXF, JSON or YAML file, the name of a
built-in preset (see "roomfit presets"), or a boundary saved with
"roomfit library add".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFit(cmd, args[0], opts)
		},
	}

	addSearchFlags(cmd, &opts.search)
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write an Excel report to this path")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write the result as JSON to this path")
	cmd.Flags().StringVar(&opts.savePath, "save", "", "save boundary, settings and result as a project file")
	return cmd
}

func (a *app) runFit(cmd *cobra.Command, arg string, opts fitOptions) error {
	boundary, saved, err := a.loadBoundary(arg)
	if err != nil {
		return err
	}
	seed, settings, err := a.resolveSearch(cmd, opts.search, saved)
	if err != nil {
		return err
	}

	rect, err := a.fit(cmd.Context(), boundary, seed, settings)
	if err != nil {
		return err
	}
	result := rect.Result()
	printFitResult(a.out, boundary, result)

	report := export.NewReport(boundary, result, settings)
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, report); err != nil {
			return fmt.Errorf("writing PDF report: %w", err)
		}
		a.log.WithField("path", opts.pdfPath).Info("wrote PDF report")
	}
	if opts.xlsxPath != "" {
		if err := export.ExportExcel(opts.xlsxPath, report); err != nil {
			return fmt.Errorf("writing Excel report: %w", err)
		}
		a.log.WithField("path", opts.xlsxPath).Info("wrote Excel report")
	}
	if opts.jsonPath != "" {
		if err := export.ExportJSON(opts.jsonPath, result); err != nil {
			return fmt.Errorf("writing JSON result: %w", err)
		}
		a.log.WithField("path", opts.jsonPath).Info("wrote JSON result")
	}

	if opts.savePath != "" {
		p := model.NewProject()
		p.Name = boundary.Name
		p.Boundary = boundary
		p.Seed = seed
		p.Settings = settings
		p.Result = &result
		if err := project.SaveProject(opts.savePath, p); err != nil {
			return err
		}
		a.config.AddRecentProject(opts.savePath, recentProjectLimit)
		if err := a.saveConfig(); err != nil {
			return err
		}
		a.log.WithField("path", opts.savePath).Info("saved project")
	}
	return nil
}

func (a *app) compareCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "compare <boundary>",
		Short: "Compare fits across seeds and search settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boundary, saved, err := a.loadBoundary(args[0])
			if err != nil {
				return err
			}
			seed, settings, err := a.resolveSearch(cmd, opts, saved)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(seed, settings)
			results := engine.CompareScenariosWithLogger(a.log.WithField("boundary", boundary.Name), scenarios, boundary.Outline)
			printComparison(a.out, boundary, results, engine.BestScenario(results))
			return nil
		},
	}

	addSearchFlags(cmd, &opts)
	return cmd
}

func (a *app) insideCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "inside <boundary> <x> <y>",
		Short: "Check whether a point lies inside a fitted boundary",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}

			boundary, saved, err := a.loadBoundary(args[0])
			if err != nil {
				return err
			}
			seed, settings, err := a.resolveSearch(cmd, opts, saved)
			if err != nil {
				return err
			}
			rect, err := a.fit(cmd.Context(), boundary, seed, settings)
			if err != nil {
				return err
			}

			inside, err := rect.IsInsideBoundary(model.Pt(x, y))
			if err != nil {
				return err
			}
			verdict := "outside"
			if inside {
				verdict = "inside"
			}
			fmt.Fprintf(a.out, "(%g, %g) is %s %s\n", x, y, verdict, boundary.Name)
			return nil
		},
	}

	addSearchFlags(cmd, &opts)
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project" + project.FileExtension + ">",
		Short: "Print the boundary and stored result of a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Project: %s (%s)\n", p.Name, p.ID)
			if p.Result == nil {
				fmt.Fprintln(a.out, "No stored result.")
				return nil
			}
			printFitResult(a.out, p.Boundary, *p.Result)
			return nil
		},
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in boundary presets",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range model.GetPresetNames() {
				preset, _ := model.GetPreset(name)
				fmt.Fprintf(a.out, "  %-12s %s (%.2f m²)\n", preset.Name, preset.Description, preset.Outline.Area())
			}
			return nil
		},
	}
}
