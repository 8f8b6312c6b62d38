package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vango-dev/storebridge/internal/config"
	"github.com/vango-dev/storebridge/internal/demo"
	"github.com/vango-dev/storebridge/internal/errors"
)

func runCmd(configPath *string) *cobra.Command {
	var (
		script  string
		expect  string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "run [variant...]",
		Short: "Click through the counter for each binding variant",
		Long: `Mount the counter component for each variant (signal, store, mutable;
all by default), click through the script and print the rendered count after
every click. With --expect the command fails unless every variant ends on
that text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.OutOrStdout(), cmd.ErrOrStderr(), *configPath, args, script, expect, metrics)
		},
	}

	cmd.Flags().StringVar(&script, "script", "inc,inc,dec", "Comma separated clicks (inc, dec)")
	cmd.Flags().StringVar(&expect, "expect", "", "Expected final count")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Print binding metrics after the run")

	return cmd
}

func runScenario(out, logOut io.Writer, configPath string, args []string, script, expect string, dumpMetrics bool) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	variants := demo.Variants()
	if len(args) > 0 {
		variants = nil
		for _, a := range args {
			v, err := demo.ParseVariant(a)
			if err != nil {
				return err
			}
			variants = append(variants, v)
		}
	}

	actions, err := demo.ParseScript(script)
	if err != nil {
		return err
	}

	logger := cfg.Log.Logger(logOut)
	reg := prometheus.NewRegistry()
	opts := cfg.BridgeOptions(logger, reg)

	var mismatched []string
	for _, v := range variants {
		res, err := demo.Run(v, actions, opts...)
		if err != nil {
			return err
		}

		texts := []string{res.Initial}
		for _, step := range res.Steps {
			texts = append(texts, step.Text)
			if step.Text != strconv.Itoa(step.Container) {
				logger.Warn("screen and container disagree",
					"variant", string(v), "text", step.Text, "container", step.Container)
			}
		}
		line := variantStyle.Render(string(v)) + strings.Join(texts, " → ")

		if expect != "" && res.Final() != expect {
			failure(out, "%s", line)
			mismatched = append(mismatched, fmt.Sprintf("%s ended on %q", v, res.Final()))
			continue
		}
		success(out, "%s", line)
	}

	if dumpMetrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}

	if len(mismatched) > 0 {
		return errors.New("R003").
			WithDetail(fmt.Sprintf("Expected %q: %s.", expect, strings.Join(mismatched, "; ")))
	}
	return nil
}

// writeMetrics prints the registry in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
