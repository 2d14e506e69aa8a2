package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emrgen/jobpost"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configDir      = "./.tmp"
	configFileName = "jobpost"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

// Context is the server address and access token used by the post commands.
type Context struct {
	Addr  string `mapstructure:"addr" json:"addr"`
	Token string `mapstructure:"token" json:"token"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var token string
	var addr string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if token == "" && addr == "" {
				color.Red(`missing: --token or --addr`)
				return
			}

			ctx := readContext()
			if token != "" {
				ctx.Token = token
			}
			if addr != "" {
				ctx.Addr = addr
			}

			if err := writeContext(ctx); err != nil {
				color.Red("error writing config file: %v", err)
				return
			}
			color.Green("context saved")
		},
	}

	command.Flags().StringVarP(&token, "token", "t", "", "access token")
	command.Flags().StringVarP(&addr, "addr", "a", "", "server address")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			addr := ctx.Addr
			if addr == "" {
				addr = jobpost.DefaultAddr
			}
			fmt.Println("addr: ", addr)
			if ctx.Token == "" {
				fmt.Println("token: <none>")
				return
			}
			fmt.Println("token: ", ctx.Token)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			if err := writeContext(Context{}); err != nil {
				color.Red("error writing config file: %v", err)
				return
			}
			color.Green("context reset")
		},
	}

	return command
}

func contextViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.AddConfigPath(configDir)
	v.SetConfigType("yml")
	return v
}

func writeContext(ctx Context) error {
	if err := os.MkdirAll(configDir, os.ModePerm); err != nil {
		return err
	}

	v := contextViper()
	v.Set("context.addr", ctx.Addr)
	v.Set("context.token", ctx.Token)

	return v.WriteConfigAs(filepath.Join(configDir, configFileName+".yml"))
}

func readContext() Context {
	var ctx Context

	v := contextViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Println("error reading config file: ", err)
		}
		return ctx
	}

	if err := v.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}

// newClient builds an api client from the saved context. The --addr and
// --token flags override it.
func newClient(cmd *cobra.Command) *jobpost.Client {
	ctx := readContext()
	if f := cmd.Flag("addr"); f != nil && f.Changed {
		ctx.Addr = f.Value.String()
	}
	if f := cmd.Flag("token"); f != nil && f.Changed {
		ctx.Token = f.Value.String()
	}
	return jobpost.NewClient(ctx.Addr, ctx.Token)
}

func bindContextFlags(command *cobra.Command) {
	command.PersistentFlags().StringP("addr", "a", "", "server address")
	command.PersistentFlags().StringP("token", "t", "", "access token")
}
