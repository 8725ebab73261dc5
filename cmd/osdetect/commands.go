package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ilexum-group/osdetect/internal/config"
	"github.com/ilexum-group/osdetect/pkg/detect"
	"github.com/ilexum-group/osdetect/pkg/models"
)

type outputOptions struct {
	jsonOut bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "print results as JSON")
}

func (o *outputOptions) print(target string, info *models.OSInfo) error {
	if o.jsonOut {
		out := struct {
			Target string         `json:"target"`
			OS     *models.OSInfo `json:"os"`
		}{Target: target, OS: info}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if info == nil {
		fmt.Printf("%s: no operating system detected\n", target)
		return nil
	}
	fmt.Printf("%s: %s\n", target, describe(info))
	return nil
}

func describe(info *models.OSInfo) string {
	parts := []string{string(info.Family)}
	if info.Distribution != "" {
		parts = append(parts, info.Distribution)
	}
	if info.Version != "" {
		parts = append(parts, info.Version)
	}
	s := strings.Join(parts, " ")
	if info.Confidence == models.ConfidenceHeuristic {
		s += " (heuristic)"
	}
	return s
}

func newEngine(cfg *config.Config, timeout time.Duration, filter bool) *detect.Engine {
	registry := detect.DefaultRegistry().WithKindFiltering(filter)
	return detect.NewEngine(detect.Options{
		Registry:     registry,
		MountTimeout: timeout,
		MountBase:    cfg.MountBase,
	})
}

func newDeviceCommand() *cobra.Command {
	var (
		kind    string
		filter  bool
		timeout time.Duration
		output  outputOptions
	)

	cfg := config.Load()
	cmd := &cobra.Command{
		Use:   "device <path>",
		Short: "Detect the OS on a raw block device (mounts it read-only temporarily)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			engine := newEngine(cfg, timeout, filter)
			info, err := engine.Detect(context.Background(), args[0], models.FilesystemKind(kind))
			if err != nil {
				return err
			}
			return output.print(args[0], info)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "filesystem kind of the device (e.g. ext4, ntfs, apfs)")
	cmd.Flags().BoolVar(&filter, "filter", cfg.FilterProbes, "only run probes compatible with the filesystem kind")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.MountTimeout, "mount timeout")
	output.register(cmd)
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newPathCommand() *cobra.Command {
	var output outputOptions

	cfg := config.Load()
	cmd := &cobra.Command{
		Use:   "path <dir>",
		Short: "Detect the OS under an already-mounted directory (no mount occurs)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			engine := newEngine(cfg, 0, false)
			info, err := engine.DetectFromMountedPath(args[0])
			if err != nil {
				return err
			}
			return output.print(args[0], info)
		},
	}

	output.register(cmd)
	return cmd
}

func newScanCommand() *cobra.Command {
	var (
		filter      bool
		timeout     time.Duration
		concurrency int
		output      outputOptions
	)

	cfg := config.Load()
	cmd := &cobra.Command{
		Use:   "scan <device>:<kind> [<device>:<kind> ...]",
		Short: "Detect the OS on several devices concurrently",
		Long: "Each argument is a device path and filesystem kind separated by a colon,\n" +
			"e.g. /dev/sda2:ext4 /dev/sda3:ntfs. Devices are probed in parallel, one\n" +
			"mount per device.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			engine := newEngine(cfg, timeout, filter)

			g, ctx := errgroup.WithContext(context.Background())
			g.SetLimit(concurrency)

			var mu sync.Mutex
			for _, arg := range args {
				device, kind, found := strings.Cut(arg, ":")
				if !found {
					return fmt.Errorf("%q: expected <device>:<kind>", arg)
				}
				g.Go(func() error {
					info, err := engine.Detect(ctx, device, models.FilesystemKind(kind))
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						fmt.Fprintf(os.Stderr, "%s: %v\n", device, err)
						return err
					}
					return output.print(device, info)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&filter, "filter", cfg.FilterProbes, "only run probes compatible with each filesystem kind")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.MountTimeout, "mount timeout per device")
	cmd.Flags().IntVar(&concurrency, "concurrency", cfg.Concurrency, "maximum devices probed in parallel")
	output.register(cmd)
	return cmd
}
