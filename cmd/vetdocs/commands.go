package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	filesadapter "vet-records/internal/adapters/files"
	mem "vet-records/internal/adapters/storage/memory"
	"vet-records/internal/config"
	"vet-records/internal/domain/attestations"
	"vet-records/internal/domain/booklets"
	"vet-records/internal/domain/idcards"
	"vet-records/internal/domain/invoices"
	"vet-records/internal/pdfdoc"
	"vet-records/internal/platform/httpclient"
	"vet-records/internal/platform/logger"
	"vet-records/internal/ports/store"
)

type flags struct {
	in      string
	out     string
	config  string
	variant string
}

// env es lo que comparten los subcomandos: un store efímero y el generador.
type env struct {
	store store.DocumentStore
	gen   *pdfdoc.Generator
	files *filesadapter.Chain
	cfg   pdfdoc.RenderConfig
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "vetdocs",
		Short:         "Genera documentos veterinarios en PDF a partir de un archivo JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.in, "in", "", "archivo JSON del registro (requerido)")
	root.PersistentFlags().StringVar(&f.out, "out", "", "ruta del PDF a escribir (requerido)")
	root.PersistentFlags().StringVar(&f.config, "config", "", "archivo YAML de configuración")
	_ = root.MarkPersistentFlagRequired("in")
	_ = root.MarkPersistentFlagRequired("out")

	root.AddCommand(
		&cobra.Command{
			Use:   "booklet",
			Short: "Carnet de salud",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), f, func(ctx context.Context, e env, raw []byte) (string, error) {
					var b booklets.Booklet
					if err := json.Unmarshal(raw, &b); err != nil {
						return "", fmt.Errorf("decode booklet: %w", err)
					}
					svc := booklets.NewService(e.store, e.gen, e.files, e.cfg)
					saved, err := svc.Create(ctx, b)
					if err != nil {
						return "", err
					}
					return svc.BuildPDF(saved, saved.ID), nil
				})
			},
		},
		&cobra.Command{
			Use:   "invoice",
			Short: "Factura",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), f, func(ctx context.Context, e env, raw []byte) (string, error) {
					var inv invoices.Invoice
					if err := json.Unmarshal(raw, &inv); err != nil {
						return "", fmt.Errorf("decode invoice: %w", err)
					}
					svc := invoices.NewService(e.store, nil, e.gen, e.files, e.cfg)
					saved, err := svc.Create(ctx, inv)
					if err != nil {
						return "", err
					}
					// sin store de carnets, el snapshot viene en el propio archivo
					saved.Animal = inv.Animal
					return svc.BuildPDF(saved, saved.ID), nil
				})
			},
		},
		&cobra.Command{
			Use:   "attestation",
			Short: "Attestation veterinaria",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), f, func(ctx context.Context, e env, raw []byte) (string, error) {
					var a attestations.Attestation
					if err := json.Unmarshal(raw, &a); err != nil {
						return "", fmt.Errorf("decode attestation: %w", err)
					}
					svc := attestations.NewService(e.store, e.gen, e.files, e.cfg)
					saved, err := svc.Create(ctx, a)
					if err != nil {
						return "", err
					}
					return svc.BuildPDF(saved, saved.ID), nil
				})
			},
		},
		idCardCmd(f),
	)
	return root
}

func idCardCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idcard",
		Short: "Carta de identificación (upper, lower o complete)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := idcards.ParseVariant(f.variant)
			if err != nil {
				return fmt.Errorf("--variant %q: %w", f.variant, err)
			}
			return run(cmd.Context(), f, func(ctx context.Context, e env, raw []byte) (string, error) {
				var c idcards.Card
				if err := json.Unmarshal(raw, &c); err != nil {
					return "", fmt.Errorf("decode id card: %w", err)
				}
				svc := idcards.NewService(e.store, e.gen, e.files, e.cfg)
				saved, err := svc.Create(ctx, c)
				if err != nil {
					return "", err
				}
				return svc.BuildPDF(saved, saved.ID, v), nil
			})
		},
	}
	cmd.Flags().StringVar(&f.variant, "variant", "complete", "upper | lower | complete")
	return cmd
}

type buildFunc func(ctx context.Context, e env, raw []byte) (string, error)

func run(ctx context.Context, f *flags, build buildFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(f.in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	log := logger.NewFromEnv("vetdocs")
	// las imágenes relativas se buscan junto al archivo de entrada
	base := filepath.Dir(f.in)
	e := env{
		store: mem.NewDocumentStore(),
		gen:   pdfdoc.NewGenerator(nil, cfg.OutputDir, log),
		files: &filesadapter.Chain{
			Local:  filesadapter.NewLocal(base),
			Remote: filesadapter.NewRemote(httpclient.New(cfg.RemoteTimeout), cfg.RemoteTimeout),
		},
		cfg: cfg.Render(),
	}
	defer e.store.Close()

	path, err := build(ctx, e, raw)
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("pdf generation failed")
	}
	defer os.Remove(path)
	return copyFile(path, f.out)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return out.Close()
}
