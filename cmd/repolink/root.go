package repolink

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"repo-link/config"
	"repo-link/helpers"
	"repo-link/logging"
	"repo-link/parse"
)

// Set at build time with -ldflags "-X repo-link/cmd/repolink.version=...".
var version = "dev"

// NewRootCmd builds the repo-link command.
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		parents    []string
		editorName string
		configPath string
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "repo-link <link>",
		Short: "Open a repository blob link in a local editor",
		Long: `repo-link takes a link such as

  https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74

finds the repository under one of the parent directories (cloning it into the
first one if it is missing), checks out the commit the link points at and opens
the file at the linked line.

Uncommitted changes in an existing clone are stashed before the checkout and
are not restored; use "git stash pop" to get them back.`,
		Example: `  repo-link https://github.com/owner/repo/blob/main/cmd/main.go#L12
  repo-link --editor code --parents ~/src --parents ~/Forks <link>`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if noColor {
				helpers.SetColorEnabled(false)
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := parse.ParseLink(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig(config.Overrides{
				ConfigPath: configPath,
				Editor:     editorName,
				Parents:    parents,
			})
			if err != nil {
				return err
			}
			log.Debug().Str("editor", cfg.Editor).Strs("parents", cfg.Parents).Msg("Configuration loaded")

			opener := NewOpener(Options{
				Parents: cfg.Parents,
				Editor:  cfg.Editor,
				Out:     cmd.OutOrStdout(),
			})
			return opener.Open(cmd.Context(), link)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&parents, "parents", "p", nil,
		"directories to search for the repository, the first one receives new clones (default ~ and ~/Forks)")
	flags.StringVarP(&editorName, "editor", "e", "",
		"editor to open the file with: vim, nvim, code, pycharm, ... (default from config or $EDITOR)")
	flags.StringVarP(&configPath, "config", "c", "", "JSON config file (default ~/"+config.DefaultConfigName+")")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	return cmd
}
