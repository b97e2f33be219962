package cmd

import (
	"context"

	"github.com/mj1618/window-qr/internal/model"
	"github.com/mj1618/window-qr/internal/output"
	"github.com/mj1618/window-qr/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List target windows",
	Long: `List the windows a scan would capture, with owner, PID, window ID, title,
bounds and layer. --all lists every window regardless of owner and size;
--apps prints only the distinct owner names.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("all", false, "List every window, ignoring --owner and the minimum size")
	listCmd.Flags().Bool("apps", false, "List distinct owner names instead of windows")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider(cfg.CaptureOptions(), logger)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	apps, _ := cmd.Flags().GetBool("apps")

	result, err := listWindows(commandContext(cmd), provider.Lister, cfg.ListOptions(), all, apps)
	if err != nil {
		return err
	}
	return output.Print(cmd.OutOrStdout(), cfg.OutputFormat(), result)
}

// listWindows returns the target windows, every window when all is set, or
// just their owner names when apps is set.
func listWindows(ctx context.Context, lister platform.Lister, opts platform.ListOptions, all, apps bool) (interface{}, error) {
	var (
		windows []model.Window
		err     error
	)
	if all {
		windows, err = lister.ListWindows(ctx)
	} else {
		windows, err = lister.ListTargetWindows(ctx, opts)
	}
	if err != nil {
		return nil, err
	}
	if windows == nil {
		windows = []model.Window{}
	}
	if apps {
		return model.OwnerNames(windows), nil
	}
	return windows, nil
}
