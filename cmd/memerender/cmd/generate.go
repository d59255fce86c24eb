package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memerender/internal/generation"
	"memerender/internal/imagegen"
	"memerender/internal/services"
)

var (
	outPath     string
	refineFirst bool
)

var generateCmd = &cobra.Command{
	Use:     "generate <prompt>",
	Aliases: []string{"gen"},
	Short:   "Generate one image and write it to a file",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		prompt := strings.Join(args, " ")

		e, err := openEnv()
		if err != nil {
			return err
		}
		store := applyTheme(e)
		defer store.Close()

		keys, err := e.keyring()
		if err != nil {
			return err
		}
		auth, err := e.auth(ctx)
		if err != nil {
			return err
		}
		if auth.State().User == nil {
			return fmt.Errorf("%w: run `memerender login` first", services.ErrNotSignedIn)
		}

		if refineFirst {
			refiner := services.NewRefineService(keys, services.RefineConfig{
				Provider:  cfg.RefineProvider,
				Model:     cfg.RefineModel,
				RouterURL: cfg.RouterURL,
			}, nil)
			refiner.Startup(ctx)
			refined, err := refiner.Refine(prompt)
			if err != nil {
				return fmt.Errorf("refine prompt: %w", err)
			}
			fmt.Println(mutedStyle().Render("Refined prompt: " + refined))
			prompt = refined
		}

		catalog, err := imagegen.LoadCatalog()
		if err != nil {
			return err
		}
		resolver := imagegen.NewResolver(catalog, keys, imagegen.ResolverConfig{
			Provider:  cfg.ImageProvider,
			RouterURL: cfg.RouterURL,
		})
		recorder := services.NewHistoryRecorder(e.dbs.Records)
		session := generation.NewSession(auth, resolver, imagegen.NewClient(),
			generation.WithRecorder(recorder.Record),
			generation.WithLogger(logger),
		)

		fmt.Println(mutedStyle().Render("Generating…"))
		st := session.Submit(ctx, prompt)
		switch st.Status {
		case generation.StatusFailed:
			return errors.New(st.Error)
		case generation.StatusSucceeded:
		default:
			return errors.New("prompt is empty")
		}

		data, ok := session.ImageBytes()
		if !ok {
			return errors.New(generation.MsgNoImage)
		}
		if err := services.WriteImageFile(outPath, data); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", okStyle().Render("Saved"), outPath)
		return nil
	},
}

var refineCmd = &cobra.Command{
	Use:   "refine <prompt>",
	Short: "Rewrite a prompt with the configured chat model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		keys, err := e.keyring()
		if err != nil {
			return err
		}
		svc := services.NewRefineService(keys, services.RefineConfig{
			Provider:  cfg.RefineProvider,
			Model:     cfg.RefineModel,
			RouterURL: cfg.RouterURL,
		}, nil)
		svc.Startup(cmd.Context())
		out, err := svc.Refine(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "meme-render.png", "Output file (.png, .jpg)")
	generateCmd.Flags().BoolVar(&refineFirst, "refine", false, "Improve the prompt with the chat model first")
	rootCmd.AddCommand(generateCmd, refineCmd)
}
