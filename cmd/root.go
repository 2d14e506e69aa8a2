package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jobpost",
	Short: "job post management tool",
	Example: `jobpost serve
jobpost db migrate
jobpost token issue -s admin@example.com
jobpost context set -t <token> -a http://localhost:8030
jobpost post create -f post.yaml
jobpost post get -i <post-id>
jobpost post list -c latestJobs
jobpost post render -i <post-id> -f markdown
jobpost post delete -i <post-id>
jobpost blocks render -f body.yaml
jobpost blocks apply -f body.yaml -o ops.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(contextCommand)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
