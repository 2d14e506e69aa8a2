package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/emrgen/jobpost/block"
	"github.com/emrgen/jobpost/block/editor"
	"github.com/emrgen/jobpost/block/render"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// blocksCmd works on local block files and needs no server.
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "block document commands",
}

func init() {
	blocksCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	blocksCmd.AddCommand(renderBlocksCmd())
	blocksCmd.AddCommand(outlineBlocksCmd())
	blocksCmd.AddCommand(applyBlocksCmd())
}

func readDocument(path string) (block.Document, error) {
	var doc block.Document
	if err := readFile(path, &doc); err != nil {
		return nil, err
	}
	if err := block.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func renderBlocksCmd() *cobra.Command {
	var file string
	var format string
	var style string
	var width int

	var required = []string{"file"}

	command := &cobra.Command{
		Use:     "render",
		Short:   "render a block file",
		Example: "jobpost blocks render -f body.yaml --format html",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			doc, err := readDocument(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			switch format {
			case "html":
				fmt.Println(render.HTML(doc))
			case "markdown":
				fmt.Println(render.Markdown(doc))
			case "terminal":
				out, err := render.Terminal(doc, style, width)
				if err != nil {
					logrus.Error(err)
					return
				}
				fmt.Print(out)
			default:
				color.Red("unknown format: %s", format)
			}
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "block file (.json, .yaml)")
	command.Flags().StringVar(&format, "format", "terminal", "html, markdown or terminal")
	command.Flags().StringVar(&style, "style", "dark", "terminal style")
	command.Flags().IntVar(&width, "width", 80, "terminal width")

	return command
}

func outlineBlocksCmd() *cobra.Command {
	var file string

	var required = []string{"file"}

	command := &cobra.Command{
		Use:     "outline",
		Short:   "list the blocks of a block file",
		Example: "jobpost blocks outline -f body.yaml",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			doc, err := readDocument(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Index", "Block", "Preview"})
			for i, b := range doc {
				table.Append([]string{
					strconv.Itoa(i),
					block.Label(b),
					render.Snippet(block.Document{b}, 40),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "block file (.json, .yaml)")

	return command
}

func applyBlocksCmd() *cobra.Command {
	var file string
	var opsFile string
	var write bool

	var required = []string{"file", "ops"}

	command := &cobra.Command{
		Use:     "apply",
		Short:   "apply editor operations to a block file",
		Long:    `apply a list of editor operations (insert, moveUp, moveDown, delete, update and the table operations) to a block file`,
		Example: "jobpost blocks apply -f body.json -o ops.yaml --write",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			doc, err := readDocument(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			var ops []editor.Op
			if err := readFile(opsFile, &ops); err != nil {
				logrus.Error(err)
				return
			}

			out, err := editor.Apply(doc, ops)
			if err != nil {
				color.Red("%v", err)
				return
			}

			if !write {
				if err := printJSON(out); err != nil {
					logrus.Error(err)
				}
				return
			}

			data, err := out.MarshalJSON()
			if err != nil {
				logrus.Error(err)
				return
			}
			if err := os.WriteFile(file+".out.json", data, 0o644); err != nil {
				logrus.Error(err)
				return
			}
			color.Green("wrote %s.out.json", file)
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "block file (.json, .yaml)")
	command.Flags().StringVarP(&opsFile, "ops", "o", "", "operations file (.json, .yaml)")
	command.Flags().BoolVar(&write, "write", false, "write the result next to the block file")

	return command
}
