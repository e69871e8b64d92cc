package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change application settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, store := openStore()
		defer store.Close()

		value, err := store.Setting(cmd.Context(), args[0])
		exitOnError(err, "unknown setting")
		fmt.Println(value)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, store := openStore()
		defer store.Close()

		exitOnError(store.SetSetting(cmd.Context(), args[0], args[1]), "failed to store setting")
		fmt.Printf("%s = %s\n", args[0], args[1])
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Show every setting, defaults included",
	Run: func(cmd *cobra.Command, args []string) {
		_, store := openStore()
		defer store.Close()

		values, err := store.ExportSettings(cmd.Context())
		exitOnError(err, "failed to export settings")

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %s\n", k, values[k])
		}
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsExportCmd)
}
