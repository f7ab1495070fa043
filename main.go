package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/device-eol-report/config"
	"github.com/aquasecurity/device-eol-report/eoldates"
	"github.com/aquasecurity/device-eol-report/intune"
	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/prompt"
	"github.com/aquasecurity/device-eol-report/report"
)

const name = "device-eol-report"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	return newCommand().Run(context.Background(), os.Args)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: "report managed devices running operating system versions that reached or near their end of life",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Sources: cli.EnvVars("EOLREPORT_CONFIG"),
			},
			&cli.StringSliceFlag{
				Name:    "family",
				Aliases: []string{"f"},
				Usage:   "operating system family to report on (Android, iOS, iPadOS, macOS, Windows), repeatable",
				Sources: cli.EnvVars("EOLREPORT_FAMILIES"),
			},
			&cli.BoolFlag{
				Name:    "only-eol",
				Usage:   "report only devices that reached end of life",
				Sources: cli.EnvVars("EOLREPORT_ONLY_EOL"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "export the report to a .json, .yaml or .zst file",
				Sources: cli.EnvVars("EOLREPORT_OUTPUT"),
			},
			&cli.StringFlag{
				Name:    "devices-file",
				Usage:   "read devices from an exported managedDevices JSON file instead of Microsoft Graph",
				Sources: cli.EnvVars("EOLREPORT_DEVICES_FILE"),
			},
			&cli.StringFlag{
				Name:    "releases-source",
				Usage:   "endoflife.date dataset source (URL, file path or any go-getter source)",
				Sources: cli.EnvVars("EOLREPORT_RELEASES_SOURCE"),
			},
			&cli.StringFlag{
				Name:    "windows-edition",
				Usage:   "Windows edition whose servicing dates apply (w: Home/Pro, e: Enterprise/Education)",
				Sources: cli.EnvVars("EOLREPORT_WINDOWS_EDITION"),
			},
			&cli.IntFlag{
				Name:    "nearing-days",
				Usage:   "days before end of life a supported device is reported as nearing EOL",
				Sources: cli.EnvVars("EOLREPORT_NEARING_DAYS"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.StringFlag{
				Name:  "tenant-id",
				Usage: "Microsoft Entra tenant ID (or EOLREPORT_TENANT_ID)",
			},
			&cli.StringFlag{
				Name:  "client-id",
				Usage: "application (client) ID (or EOLREPORT_CLIENT_ID)",
			},
			&cli.StringFlag{
				Name:  "client-secret",
				Usage: "client secret (or EOLREPORT_CLIENT_SECRET)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(afero.NewOsFs(), cmd.String("config"))
			if err != nil {
				return xerrors.Errorf("config error: %w", err)
			}
			applyFlags(cmd, &cfg)

			if err = promptMissing(&cfg); err != nil {
				return xerrors.Errorf("prompt error: %w", err)
			}
			if err = cfg.Validate(); err != nil {
				return xerrors.Errorf("invalid config: %w", err)
			}
			return generate(ctx, cfg)
		},
	}
}

// applyFlags overrides the config file with the flags set on the command line.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("family") {
		cfg.Families = cmd.StringSlice("family")
	}
	if cmd.IsSet("only-eol") {
		onlyEOL := cmd.Bool("only-eol")
		cfg.OnlyEOL = &onlyEOL
	}
	if cmd.IsSet("nearing-days") {
		cfg.NearingEOLDays = cmd.Int("nearing-days")
	}
	if cmd.IsSet("no-color") {
		cfg.NoColor = cmd.Bool("no-color")
	}

	for flag, field := range map[string]*string{
		"output":          &cfg.Output,
		"devices-file":    &cfg.DevicesFile,
		"releases-source": &cfg.ReleasesSource,
		"windows-edition": &cfg.WindowsEdition,
		"tenant-id":       &cfg.TenantID,
		"client-id":       &cfg.ClientID,
		"client-secret":   &cfg.ClientSecret,
	} {
		if cmd.IsSet(flag) {
			*field = cmd.String(flag)
		}
	}
}

// promptMissing asks for the family selection and the EOL filter when
// neither the flags nor the config file set them and stdin is a terminal.
func promptMissing(cfg *config.Config) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil
	}

	p := prompt.New(os.Stdin, os.Stdout)
	if len(cfg.Families) == 0 {
		families, err := p.Families()
		if err != nil {
			return err
		}
		for _, f := range families {
			cfg.Families = append(cfg.Families, string(f))
		}
	}
	if cfg.OnlyEOL == nil {
		onlyEOL, err := p.OnlyEOL()
		if err != nil {
			return err
		}
		cfg.OnlyEOL = &onlyEOL
	}
	return nil
}

func generate(ctx context.Context, cfg config.Config) error {
	devices, err := fetchDevices(ctx, cfg)
	if err != nil {
		return xerrors.Errorf("error in device retrieval: %w", err)
	}

	opts := []eoldates.Option{
		eoldates.WithProducts(cfg.Products()),
		eoldates.WithMissedReleases(cfg.MissedReleases),
		eoldates.WithWindowsEdition(cfg.WindowsEdition),
	}
	if cfg.ReleasesSource != "" {
		opts = append(opts, eoldates.WithURL(cfg.ReleasesSource))
	}
	releases, err := eoldates.NewConfig(opts...).Fetch(ctx)
	if err != nil {
		return xerrors.Errorf("error in endoflife.date retrieval: %w", err)
	}

	catalogs := make(map[lifecycle.Family]*lifecycle.Catalog)
	for _, f := range lifecycle.Families {
		catalogs[f] = f.Platform().NewCatalog(releases[f.Product()])
	}

	classifier := lifecycle.NewClassifier(time.Now(), cfg.NearingEOLDays)
	r := report.Build(devices, catalogs, classifier, report.Options{
		OnlyEOL:  cfg.OnlyEOL != nil && *cfg.OnlyEOL,
		Families: cfg.SelectedFamilies(),
	})

	if err = report.Render(os.Stdout, r, report.RenderOptions{NoColor: cfg.NoColor}); err != nil {
		return xerrors.Errorf("render error: %w", err)
	}

	if cfg.Output == "" {
		return nil
	}
	if err = report.Export(afero.NewOsFs(), cfg.Output, r); err != nil {
		return xerrors.Errorf("export error: %w", err)
	}
	log.Printf("Report written to %s", cfg.Output)
	return nil
}

func fetchDevices(ctx context.Context, cfg config.Config) ([]lifecycle.Device, error) {
	if cfg.DevicesFile != "" {
		log.Printf("Loading devices from %s", cfg.DevicesFile)
		return intune.LoadDevices(afero.NewOsFs(), cfg.DevicesFile)
	}

	httpClient := intune.NewHTTPClient(ctx, intune.Credentials{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	opts := []intune.Option{
		intune.WithHTTPClient(httpClient),
		intune.WithProgress(isatty.IsTerminal(os.Stderr.Fd())),
	}
	if cfg.GraphBaseURL != "" {
		opts = append(opts, intune.WithBaseURL(cfg.GraphBaseURL))
	}
	return intune.NewClient(opts...).ManagedDevices(ctx)
}
